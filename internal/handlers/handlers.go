package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AndreToral/MVP-PROJECT/internal/ai"
	"github.com/AndreToral/MVP-PROJECT/internal/logger"
	"github.com/AndreToral/MVP-PROJECT/internal/models"
	"github.com/AndreToral/MVP-PROJECT/internal/progress"
	"github.com/AndreToral/MVP-PROJECT/internal/scheduler"
	"github.com/AndreToral/MVP-PROJECT/internal/vak"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TextGenerator is the slice of the AI service the handlers consume.
type TextGenerator interface {
	GenerateAdaptedContent(ctx context.Context, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// StyleClassifier calls the external VAK classification microservice.
type StyleClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

type Handler struct {
	DB         *gorm.DB
	AI         TextGenerator
	Classifier StyleClassifier
	Progress   *progress.Tracker
	Log        *logger.Logger
}

func New(db *gorm.DB, aiService TextGenerator, classifierClient StyleClassifier, tracker *progress.Tracker, log *logger.Logger) Handler {
	return Handler{
		DB:         db,
		AI:         aiService,
		Classifier: classifierClient,
		Progress:   tracker,
		Log:        log,
	}
}

// ClassifyStyleHandler translates the student's Spanish answer to English,
// classifies it through the VAK microservice and upserts the resulting
// learning style. Re-taking the test overwrites the previous style.
func (h *Handler) ClassifyStyleHandler(c *gin.Context) {
	var req struct {
		TextEspanol string `json:"text_espanol"`
		UserID      string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido."})
		return
	}
	if req.TextEspanol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "text_espanol" es obligatorio.`})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "user_id" es obligatorio para la persistencia.`})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "user_id" debe ser un UUID válido.`})
		return
	}

	ctx := c.Request.Context()

	translated, err := h.AI.GenerateText(ctx, vak.BuildTranslationPrompt(req.TextEspanol))
	if err != nil {
		h.Log.Error("translation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en el servicio de traducción."})
		return
	}
	translated = strings.TrimSpace(translated)

	label, err := h.Classifier.Classify(ctx, translated)
	if err != nil {
		h.Log.Error("classification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al clasificar el texto con el modelo NLP."})
		return
	}
	if label == "" {
		h.Log.Warn("classifier returned no label, defaulting to Visual", "student_id", userID)
	}
	style := vak.NormalizeStyle(label)

	student := models.Student{
		ID:               userID,
		LearningStyle:    style,
		LastClassifiedAt: time.Now(),
	}
	err = h.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"learning_style", "last_classified_at"}),
	}).Create(&student).Error
	if err != nil {
		h.Log.Error("failed to persist classification", "student_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al persistir la clasificación en la DB."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estilo_aprendizaje": style,
		"student_id":         userID,
		"texto_traducido":    translated,
	})
}

// ContentAgentHandler generates study content adapted to the student's
// learning style, with web-grounded search. The generated topic and the
// search log are persisted best effort; their failures never downgrade a
// successful generation.
func (h *Handler) ContentAgentHandler(c *gin.Context) {
	var req struct {
		Topic     string `json:"topic"`
		StudentID string `json:"student_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" || req.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Se requieren el "topic" y el "student_id".`})
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "student_id" debe ser un UUID válido.`})
		return
	}

	ctx := c.Request.Context()

	var student models.Student
	if err := h.DB.WithContext(ctx).First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estudiante no encontrado. El test VAK debe ser completado primero."})
			return
		}
		h.Log.Error("failed to look up learning style", "student_id", studentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el estilo VAK o generar el contenido adaptado."})
		return
	}

	prompt := vak.BuildPrompt(student.LearningStyle, req.Topic)

	content, err := h.AI.GenerateAdaptedContent(ctx, prompt)
	if err != nil {
		h.Log.Error("content generation failed", "student_id", studentID, "topic", req.Topic, "error", err)
		var overloaded *ai.OverloadedError
		if errors.As(err, &overloaded) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": overloaded.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el estilo VAK o generar el contenido adaptado."})
		return
	}

	// New topics start on a fixed one-day onboarding interval; the
	// scheduler takes over after the first quiz.
	now := time.Now()
	topic := models.LearningTopic{
		StudentID:        studentID,
		TopicName:        req.Topic,
		ContentGenerated: content,
		DifficultyLevel:  1,
		LastReviewedAt:   now,
		NextReviewAt:     now.AddDate(0, 0, 1),
	}
	if err := h.DB.WithContext(ctx).Create(&topic).Error; err != nil {
		h.Log.Warn("failed to save generated topic (non-critical)", "student_id", studentID, "error", err)
	}

	searchLog := models.AgentLog{
		StudentID:      studentID,
		SearchTopic:    req.Topic,
		StyleUsed:      student.LearningStyle,
		ResponseLength: len(content),
	}
	if err := h.DB.WithContext(ctx).Create(&searchLog).Error; err != nil {
		h.Log.Warn("failed to save search log (non-critical)", "student_id", studentID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"estilo_usado": student.LearningStyle,
		"contenido":    content,
	})
}

// SaveTopicHandler stores a studied topic for spaced-repetition tracking.
func (h *Handler) SaveTopicHandler(c *gin.Context) {
	var req struct {
		StudentID        string `json:"student_id"`
		TopicName        string `json:"topic_name"`
		ContentGenerated string `json:"content_generated"`
		DifficultyLevel  int    `json:"difficulty_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == "" || req.TopicName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id y topic_name son requeridos"})
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "student_id" debe ser un UUID válido.`})
		return
	}
	if req.DifficultyLevel == 0 {
		req.DifficultyLevel = 1
	}

	ctx := c.Request.Context()

	now := time.Now()
	nextReview := now.AddDate(0, 0, 1)
	topic := models.LearningTopic{
		StudentID:        studentID,
		TopicName:        req.TopicName,
		ContentGenerated: req.ContentGenerated,
		DifficultyLevel:  req.DifficultyLevel,
		LastReviewedAt:   now,
		NextReviewAt:     nextReview,
	}
	if err := h.DB.WithContext(ctx).Create(&topic).Error; err != nil {
		h.Log.Error("failed to save studied topic", "student_id", studentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el tema"})
		return
	}

	if _, err := h.Progress.ApplyStudyActivity(ctx, studentID, false); err != nil {
		h.Log.Warn("failed to update student progress (non-critical)", "student_id", studentID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Tema guardado exitosamente",
		"topic_id":       topic.ID,
		"next_review_at": nextReview,
	})
}

type quizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type quizResponse struct {
	Questions []quizQuestion `json:"questions"`
}

// GenerateQuizHandler asks the fast model for a 3-question quiz in strict
// JSON and parses it, stripping the markdown fences the model sometimes
// wraps around the payload.
func (h *Handler) GenerateQuizHandler(c *gin.Context) {
	var req struct {
		TopicName       string `json:"topic_name"`
		DifficultyLevel int    `json:"difficulty_level"`
		LearningStyle   string `json:"learning_style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido."})
		return
	}
	if req.DifficultyLevel == 0 {
		req.DifficultyLevel = 1
	}

	raw, err := h.AI.GenerateText(c.Request.Context(), vak.BuildQuizPrompt(req.TopicName, req.DifficultyLevel, req.LearningStyle))
	if err != nil {
		h.Log.Error("quiz generation failed", "topic", req.TopicName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el quiz"})
		return
	}

	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var quiz quizResponse
	if err := json.Unmarshal([]byte(clean), &quiz); err != nil {
		h.Log.Error("quiz response was not valid JSON", "topic", req.TopicName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el quiz"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// SubmitQuizHandler records an assessment, updates the topic's mastery
// score and schedules the next review. There is no transaction across the
// steps: a persisted assessment stays persisted even if a later step
// fails. Concurrent submissions for the same topic race on the
// read-modify-write; last write wins.
func (h *Handler) SubmitQuizHandler(c *gin.Context) {
	var req struct {
		LearningTopicID  string          `json:"learning_topic_id"`
		StudentID        string          `json:"student_id"`
		Score            float64         `json:"score"`
		TimeSpentSeconds int             `json:"time_spent_seconds"`
		QuestionsData    json.RawMessage `json:"questions_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido."})
		return
	}
	topicID, err := uuid.Parse(req.LearningTopicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "learning_topic_id" debe ser un UUID válido.`})
		return
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "student_id" debe ser un UUID válido.`})
		return
	}

	ctx := c.Request.Context()

	assessment := models.TopicAssessment{
		LearningTopicID:  topicID,
		StudentID:        studentID,
		Score:            req.Score,
		TimeSpentSeconds: req.TimeSpentSeconds,
		QuestionsData:    req.QuestionsData,
	}
	if err := h.DB.WithContext(ctx).Create(&assessment).Error; err != nil {
		h.Log.Error("failed to save assessment", "topic_id", topicID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar resultados"})
		return
	}

	var topic models.LearningTopic
	if err := h.DB.WithContext(ctx).First(&topic, "id = ?", topicID).Error; err != nil {
		h.Log.Error("failed to load topic for mastery update", "topic_id", topicID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar resultados"})
		return
	}

	previousMastery := topic.MasteryScore
	newMastery := scheduler.UpdateMastery(previousMastery, req.Score)

	now := time.Now()
	nextReview := scheduler.NextReviewAt(now, scheduler.NextReviewInterval(newMastery))

	err = h.DB.WithContext(ctx).Model(&topic).Updates(map[string]interface{}{
		"mastery_score":    newMastery,
		"last_reviewed_at": now,
		"next_review_at":   nextReview,
	}).Error
	if err != nil {
		h.Log.Error("failed to update topic mastery", "topic_id", topicID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar resultados"})
		return
	}

	if scheduler.MasteryAchieved(previousMastery, newMastery) {
		if _, err := h.Progress.ApplyStudyActivity(ctx, studentID, true); err != nil {
			h.Log.Warn("failed to update student progress (non-critical)", "student_id", studentID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Quiz enviado exitosamente",
		"new_mastery":      newMastery,
		"next_review_at":   nextReview,
		"mastery_achieved": newMastery >= 0.8,
	})
}

// TopicsToReviewHandler lists the topics whose next review is due, oldest
// first, capped at five.
func (h *Handler) TopicsToReviewHandler(c *gin.Context) {
	studentIDStr := c.Query("student_id")
	if studentIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id es requerido"})
		return
	}
	studentID, err := uuid.Parse(studentIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `El campo "student_id" debe ser un UUID válido.`})
		return
	}

	var topics []models.LearningTopic
	err = h.DB.WithContext(c.Request.Context()).
		Where("student_id = ? AND next_review_at <= ?", studentID, time.Now()).
		Order("next_review_at asc").
		Limit(5).
		Find(&topics).Error
	if err != nil {
		h.Log.Error("failed to fetch topics to review", "student_id", studentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener temas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topics_to_review": topics,
		"count":            len(topics),
	})
}
