package prefs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmboard/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/preferences", h.GetAll)
	protected.PUT("/preferences", h.Set)
}

func (h *Handler) GetAll(c *gin.Context) {
	userID := c.GetInt64("user_id")

	prefs, err := h.service.GetAll(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to load preferences")
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

func (h *Handler) Set(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Set(c.Request.Context(), userID, req.Key, req.Value); err != nil {
		if errors.Is(err, ErrUnknownKey) {
			response.Error(c, http.StatusUnprocessableEntity, "UNKNOWN_KEY", "Unknown preference key")
			return
		}
		response.Internal(c, "Failed to save preference")
		return
	}
	response.Success(c, http.StatusOK, gin.H{req.Key: req.Value})
}
