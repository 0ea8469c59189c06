package handlers

import (
	"context"
	"net/http"

	"game-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// GetProfile returns the caller's progression profile, creating a fresh
// one on first contact.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	username := c.GetHeader("X-Username")
	profile, err := h.Profiles.GetOrCreateProfile(context.Background(), userID, username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetSubjectStats(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	stats, err := h.Profiles.SubjectStats(context.Background(), userID, c.Param("subject"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ProfileHandler) GetAllSubjectStats(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	overviews, err := h.Profiles.AllSubjectStats(context.Background(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": overviews})
}
