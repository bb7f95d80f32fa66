package field

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/fields", h.List)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	fields := admin.Group("/fields")
	{
		fields.POST("", h.Create)
		fields.PUT("/:id", h.Update)
		fields.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var q ListFieldsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	fields, err := h.service.ListFields(c.Request.Context(), companyID, q)
	if err != nil {
		response.Internal(c, "Failed to list fields")
		return
	}
	response.Success(c, http.StatusOK, fields)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.CreateField(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeFieldError(c, err, "Failed to create field")
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid field id")
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.UpdateField(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.writeFieldError(c, err, "Failed to update field")
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid field id")
		return
	}

	if err := h.service.DeleteField(c.Request.Context(), companyID, id); err != nil {
		h.writeFieldError(c, err, "Failed to delete field")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeFieldError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrFieldNotFound):
		response.NotFound(c, "Custom field not found")
	case errors.Is(err, ErrPipelineNotFound):
		response.NotFound(c, "Pipeline not found")
	case errors.Is(err, ErrOptionsRequired):
		response.Error(c, http.StatusUnprocessableEntity, "OPTIONS_REQUIRED", "Select fields require an options list")
	case errors.Is(err, ErrOptionsNotAllowed):
		response.Error(c, http.StatusUnprocessableEntity, "OPTIONS_NOT_ALLOWED", "Only select fields may carry options")
	default:
		response.Internal(c, fallback)
	}
}
