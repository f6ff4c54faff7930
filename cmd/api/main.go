package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AndreToral/MVP-PROJECT/internal/ai"
	"github.com/AndreToral/MVP-PROJECT/internal/classifier"
	"github.com/AndreToral/MVP-PROJECT/internal/database"
	"github.com/AndreToral/MVP-PROJECT/internal/handlers"
	"github.com/AndreToral/MVP-PROJECT/internal/logger"
	"github.com/AndreToral/MVP-PROJECT/internal/progress"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	log, err := logger.New(viper.GetString("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := viper.ReadInConfig(); err != nil {
		log.Info("Could not find config.yaml, using environment variables only")
	}

	db, err := database.Connect(log)
	if err != nil {
		log.Fatal("Could not connect to the database", "error", err)
	}

	// The genai client cannot be constructed without a key, so a missing
	// one halts startup. The classifier URL is only needed per request;
	// missing it degrades one endpoint rather than the whole server.
	geminiAPIKey := viper.GetString("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not configured")
	}
	aiService, err := ai.NewService(context.Background(), geminiAPIKey, log)
	if err != nil {
		log.Fatal("Could not initialize AI service", "error", err)
	}

	classifierURL := viper.GetString("PYTHON_CLASSIFIER_URL")
	if classifierURL == "" {
		log.Error("PYTHON_CLASSIFIER_URL is not configured; classification endpoint will fail")
	}
	classifierClient := classifier.New(classifierURL, log)

	tracker := progress.NewTracker(db, log)
	h := handlers.New(db, aiService, classifierClient, tracker, log)

	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/classify-style", h.ClassifyStyleHandler)
		api.POST("/content-agent", h.ContentAgentHandler)

		learning := api.Group("/learning")
		{
			learning.POST("/save-topic", h.SaveTopicHandler)
			learning.POST("/generate-quiz", h.GenerateQuizHandler)
			learning.POST("/submit-quiz", h.SubmitQuizHandler)
			learning.GET("/topics-to-review", h.TopicsToReviewHandler)
		}
	}

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server", "error", err)
	}
}
