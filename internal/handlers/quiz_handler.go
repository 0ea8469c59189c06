package handlers

import (
	"context"
	"net/http"

	"game-service/internal/event"
	"game-service/internal/models"
	"game-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service  *service.QuizService
	Profiles *service.ProfileService
	Events   *event.Publisher
}

func NewQuizHandler(s *service.QuizService, profiles *service.ProfileService, events *event.Publisher) *QuizHandler {
	return &QuizHandler{Service: s, Profiles: profiles, Events: events}
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.Service.GetAllQuizzes(context.Background())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz serves one quiz with its question set matched to the caller's
// difficulty tier in the quiz's subject. Correct answers are stripped by
// serialization.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	view, err := h.Profiles.GetQuizForUser(context.Background(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateQuiz(context.Background(), &quiz); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.Service.DeleteQuiz(context.Background(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// SubmitQuiz grades a submission and applies the full progression
// update in one shot.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	var req models.QuizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.Profiles.SubmitQuiz(context.Background(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.Events.Publish(event.QuizCompleted, gin.H{
		"userId": userID,
		"quizId": req.QuizID,
		"score":  resp.Score,
	})
	if resp.LeveledUp {
		h.Events.Publish(event.LevelUp, gin.H{"userId": userID, "level": resp.NewLevel})
	}
	h.Events.PublishAchievements(userID, resp.Achievements)

	c.JSON(http.StatusOK, resp)
}
