package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/erickmmolina/baby-shower-registry/internal/common/errors"
	"github.com/erickmmolina/baby-shower-registry/internal/common/logger"
	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/models"
	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/service"
)

type RegistryHandler struct {
	service service.RegistryService
}

func NewRegistryHandler(service service.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

func (h *RegistryHandler) RegisterRoutes(router *gin.RouterGroup) {
	gifts := router.Group("/gifts")
	{
		gifts.GET("", h.listGifts)
		gifts.GET("/:id", h.getGift)
		gifts.POST("/:id/claim", h.claimGiftByPath)
		gifts.POST("/:id/release", h.releaseGiftByPath)
	}

	// Flat admin-panel routes kept for compatibility with the original
	// front end, which posts ids in the body.
	router.POST("/add-gift", h.addGift)
	router.POST("/update-gift", h.updateGift)
	router.POST("/delete-gift", h.deleteGift)
	router.POST("/update-images", h.updateImages)
	router.POST("/claim", h.claimGift)
	router.POST("/release", h.releaseGift)
}

// @Summary List gifts
// @Description Get the full gift registry
// @Tags gifts
// @Produce json
// @Success 200 {array} models.Gift
// @Router /gifts [get]
func (h *RegistryHandler) listGifts(c *gin.Context) {
	gifts, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

// @Summary Get gift
// @Description Get a single gift by id
// @Tags gifts
// @Produce json
// @Param id path int true "Gift ID"
// @Success 200 {object} models.Gift
// @Failure 404 {object} map[string]string
// @Router /gifts/{id} [get]
func (h *RegistryHandler) getGift(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	gift, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Add gift
// @Description Add a new gift to the registry
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Router /add-gift [post]
func (h *RegistryHandler) addGift(c *gin.Context) {
	var input models.GiftCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "gift name is required"})
		return
	}
	gift, err := h.service.Add(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Update gift
// @Description Replace a gift's descriptive fields
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /update-gift [post]
func (h *RegistryHandler) updateGift(c *gin.Context) {
	var input models.GiftUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "giftId and name are required"})
		return
	}
	gift, err := h.service.Update(c.Request.Context(), *input.GiftID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Delete gift
// @Description Remove a gift from the registry
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /delete-gift [post]
func (h *RegistryHandler) deleteGift(c *gin.Context) {
	var input struct {
		GiftID *int `json:"giftId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "giftId is required"})
		return
	}
	gift, err := h.service.Delete(c.Request.Context(), *input.GiftID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Update gift images
// @Description Replace a gift's image list
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /update-images [post]
func (h *RegistryHandler) updateImages(c *gin.Context) {
	var input models.UpdateImagesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "giftId and an images array are required"})
		return
	}
	gift, err := h.service.UpdateImages(c.Request.Context(), *input.GiftID, *input.Images)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Claim gift
// @Description Reserve an available gift for a guest
// @Tags gifts
// @Accept json
// @Produce json
// @Param id path int true "Gift ID"
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /gifts/{id}/claim [post]
func (h *RegistryHandler) claimGiftByPath(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var claimant models.ClaimantInput
	if err := c.ShouldBindJSON(&claimant); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "firstName, lastName and email are required"})
		return
	}
	h.claim(c, id, &claimant)
}

// @Summary Claim gift (body id)
// @Description Reserve an available gift, id taken from the body
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /claim [post]
func (h *RegistryHandler) claimGift(c *gin.Context) {
	var input models.ClaimRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "giftId, firstName, lastName and email are required"})
		return
	}
	h.claim(c, *input.GiftID, &input.ClaimantInput)
}

func (h *RegistryHandler) claim(c *gin.Context, id int, claimant *models.ClaimantInput) {
	gift, err := h.service.Claim(c.Request.Context(), id, claimant)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

// @Summary Release gift
// @Description Free a claimed gift
// @Tags gifts
// @Produce json
// @Param id path int true "Gift ID"
// @Success 200 {object} models.Gift
// @Failure 404 {object} map[string]string
// @Router /gifts/{id}/release [post]
func (h *RegistryHandler) releaseGiftByPath(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.release(c, id)
}

// @Summary Release gift (body id)
// @Description Free a claimed gift, id taken from the body
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} models.Gift
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /release [post]
func (h *RegistryHandler) releaseGift(c *gin.Context) {
	var input models.ReleaseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "giftId is required"})
		return
	}
	h.release(c, *input.GiftID)
}

func (h *RegistryHandler) release(c *gin.Context, id int) {
	gift, err := h.service.Release(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return 0, false
	}
	return id, true
}

// respondError translates service errors into the JSON error body.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeContention:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
