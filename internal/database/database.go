package database

import (
	"errors"
	"fmt"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
	"github.com/AndreToral/MVP-PROJECT/internal/models"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(log *logger.Logger) (*gorm.DB, error) {
	// Viper picks environment variables first, config.yaml second.
	host := viper.GetString("DB_HOST")
	port := viper.GetString("DB_PORT")
	user := viper.GetString("DB_USER")
	password := viper.GetString("DB_PASSWORD")
	dbname := viper.GetString("DB_NAME")

	if host == "" {
		host = viper.GetString("database.host")
		port = viper.GetString("database.port")
		user = viper.GetString("database.user")
		password = viper.GetString("database.password")
		dbname = viper.GetString("database.dbname")
	}

	if host == "" || port == "" || user == "" || dbname == "" {
		return nil, errors.New("database configuration is incomplete")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database migrated successfully")

	return db, nil
}

// Migrate is separate from Connect so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.LearningTopic{},
		&models.TopicAssessment{},
		&models.StudentProgress{},
		&models.StudentAchievement{},
		&models.AgentLog{},
	)
}
