package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/erickmmolina/baby-shower-registry/internal/common/errors"
	"github.com/erickmmolina/baby-shower-registry/internal/common/logger"
	"github.com/erickmmolina/baby-shower-registry/internal/features/event/models"
	"github.com/erickmmolina/baby-shower-registry/internal/features/event/service"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/event", h.getEvent)
	router.POST("/event", h.setEvent)
}

// @Summary Get event details
// @Tags event
// @Produce json
// @Success 200 {object} models.Event
// @Router /event [get]
func (h *EventHandler) getEvent(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// @Summary Update event details
// @Tags event
// @Accept json
// @Produce json
// @Success 200 {object} models.Event
// @Failure 400 {object} map[string]string
// @Router /event [post]
func (h *EventHandler) setEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}
	saved, err := h.service.Set(c.Request.Context(), &event)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Code == apperrors.ErrCodeValidation {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("event request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
