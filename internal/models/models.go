package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is keyed by the platform auth user ID, so classification and
// content generation always address the same row.
type Student struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LearningStyle    string    `gorm:"not null" json:"learning_style"`
	LastClassifiedAt time.Time `json:"last_classified_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type LearningTopic struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	TopicName        string    `gorm:"not null" json:"topic_name"`
	ContentGenerated string    `gorm:"type:text" json:"content_generated"`
	DifficultyLevel  int       `gorm:"default:1" json:"difficulty_level"`
	MasteryScore     float64   `gorm:"default:0" json:"mastery_score"`
	LastReviewedAt   time.Time `json:"last_reviewed_at"`
	NextReviewAt     time.Time `gorm:"index" json:"next_review_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (t *LearningTopic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TopicAssessment is an append-only log of quiz submissions.
type TopicAssessment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	LearningTopicID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"learning_topic_id"`
	StudentID        uuid.UUID       `gorm:"type:uuid;not null" json:"student_id"`
	Score            float64         `gorm:"not null" json:"score"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	QuestionsData    json.RawMessage `gorm:"type:jsonb" json:"questions_data"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StudentProgress holds one row per student. LastActivityDate is written
// at midnight; the date column round-trips through the driver as a
// timestamp, so streak logic compares calendar dates, never raw values.
type StudentProgress struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	StudentID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"student_id"`
	TotalTopicsStudied  int       `gorm:"default:0" json:"total_topics_studied"`
	TotalTopicsMastered int       `gorm:"default:0" json:"total_topics_mastered"`
	StudyStreakDays     int       `gorm:"default:0" json:"study_streak_days"`
	LastActivityDate    time.Time `gorm:"type:date" json:"last_activity_date"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type StudentAchievement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_achievement" json:"student_id"`
	AchievementType string    `gorm:"not null;uniqueIndex:idx_student_achievement" json:"achievement_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// AgentLog records every content-agent search for later analysis.
type AgentLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	SearchTopic    string    `gorm:"not null" json:"search_topic"`
	StyleUsed      string    `json:"style_used"`
	ResponseLength int       `json:"response_length"`
	CreatedAt      time.Time `json:"created_at"`
}
