package handlers

import (
	"context"
	"net/http"

	"game-service/internal/event"
	"game-service/internal/models"
	"game-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SpeedTypeHandler struct {
	Profiles *service.ProfileService
	Events   *event.Publisher
}

func NewSpeedTypeHandler(profiles *service.ProfileService, events *event.Publisher) *SpeedTypeHandler {
	return &SpeedTypeHandler{Profiles: profiles, Events: events}
}

func (h *SpeedTypeHandler) SubmitGame(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	var req models.SpeedTypeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.Profiles.SubmitSpeedType(context.Background(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.Events.Publish(event.SpeedTypeCompleted, gin.H{
		"userId":     userID,
		"difficulty": req.Difficulty,
		"earnedXP":   resp.EarnedXP,
	})
	if resp.LeveledUp {
		h.Events.Publish(event.LevelUp, gin.H{"userId": userID, "level": resp.NewLevel})
	}
	h.Events.PublishAchievements(userID, resp.Achievements)

	c.JSON(http.StatusOK, resp)
}

func (h *SpeedTypeHandler) GetStats(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	stats, err := h.Profiles.SpeedTypeStats(context.Background(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetLeaderboard returns the top players by best WPM. An optional
// ?difficulty= query scopes it to one tier.
func (h *SpeedTypeHandler) GetLeaderboard(c *gin.Context) {
	difficulty := models.Difficulty(c.Query("difficulty"))
	entries, err := h.Profiles.Leaderboard(context.Background(), difficulty)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
