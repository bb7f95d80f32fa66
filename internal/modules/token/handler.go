package token

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmboard/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts token management; only admins issue and
// revoke machine credentials.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	tokens := admin.Group("/tokens")
	{
		tokens.GET("", h.List)
		tokens.POST("", h.Create)
		tokens.PATCH("/:id/active", h.SetActive)
		tokens.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreateToken(c.Request.Context(), companyID, req)
	if err != nil {
		response.Internal(c, "Failed to create token")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	tokens, err := h.service.ListTokens(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "Failed to list tokens")
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

func (h *Handler) SetActive(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := tokenID(c)
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetActive(c.Request.Context(), companyID, id, *req.Active); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			response.NotFound(c, "Token not found")
			return
		}
		response.Internal(c, "Failed to update token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "active": *req.Active})
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := tokenID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteToken(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			response.NotFound(c, "Token not found")
			return
		}
		response.Internal(c, "Failed to delete token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func tokenID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid token id")
		return 0, false
	}
	return id, true
}
