// Package progress maintains per-student streaks, counters and
// achievements around every study action.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
	"github.com/AndreToral/MVP-PROJECT/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// Achievement types unlocked by streak thresholds.
const (
	AchievementStreak7  = "streak_7"
	AchievementStreak30 = "streak_30"
)

type Tracker struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTracker(db *gorm.DB, log *logger.Logger) *Tracker {
	return &Tracker{db: db, log: log}
}

// ApplyStudyActivity registers one study action for the student: streak
// update, counters, and achievement checks against the new streak.
// Achievement awarding is best effort; its failures are logged and never
// returned, so they cannot roll back the progress upsert.
func (t *Tracker) ApplyStudyActivity(ctx context.Context, studentID uuid.UUID, masteredNewTopic bool) (*models.StudentProgress, error) {
	db := t.db.WithContext(ctx)

	var prior models.StudentProgress
	err := db.Where("student_id = ?", studentID).First(&prior).Error
	hasPrior := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load student progress: %w", err)
	}

	now := time.Now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	// The streak continues only on consecutive calendar days. The stored
	// date is compared by its formatted day, not raw equality: the date
	// column reads back as a timestamp, not the string it was written as.
	newStreak := 1
	if hasPrior {
		switch prior.LastActivityDate.Format(dateLayout) {
		case yesterday:
			newStreak = prior.StudyStreakDays + 1
		case today:
			newStreak = prior.StudyStreakDays
		}
	}

	mastered := prior.TotalTopicsMastered
	if masteredNewTopic {
		mastered++
	}

	updated := models.StudentProgress{
		StudentID:           studentID,
		TotalTopicsStudied:  prior.TotalTopicsStudied + 1,
		TotalTopicsMastered: mastered,
		StudyStreakDays:     newStreak,
		LastActivityDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		UpdatedAt:           now,
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_topics_studied", "total_topics_mastered",
			"study_streak_days", "last_activity_date", "updated_at",
		}),
	}).Create(&updated).Error
	if err != nil {
		return nil, fmt.Errorf("upsert student progress: %w", err)
	}

	t.awardAchievements(ctx, studentID, newStreak)

	return &updated, nil
}

// awardAchievements grants streak achievements idempotently. Re-awarding
// an already-held achievement is a no-op thanks to the unique index on
// (student_id, achievement_type).
func (t *Tracker) awardAchievements(ctx context.Context, studentID uuid.UUID, streak int) {
	var types []string
	if streak >= 7 {
		types = append(types, AchievementStreak7)
	}
	if streak >= 30 {
		types = append(types, AchievementStreak30)
	}

	for _, achievementType := range types {
		achievement := models.StudentAchievement{
			StudentID:       studentID,
			AchievementType: achievementType,
		}
		err := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&achievement).Error
		if err != nil {
			t.log.Error("failed to award achievement",
				"student_id", studentID, "achievement_type", achievementType, "error", err)
		}
	}
}
