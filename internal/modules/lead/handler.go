package lead

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
	leads := protected.Group("/leads")
	{
		leads.GET("", h.List)
		leads.POST("", h.Create)
		leads.GET("/:id", h.Get)
		leads.PUT("/:id", h.Update)
		leads.DELETE("/:id", h.Delete)
		leads.POST("/:id/lost", h.MarkLost)
		leads.POST("/:id/sold", h.MarkSold)
		leads.POST("/:id/touch", h.TouchContact)
		leads.PUT("/:id/values", h.SetValue)
	}
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var q ListLeadsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	leads, err := h.service.ListLeads(c.Request.Context(), companyID, q)
	if err != nil {
		response.Internal(c, "Failed to list leads")
		return
	}
	response.Success(c, http.StatusOK, leads)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.CreateLead(c.Request.Context(), companyID, req)
	if err != nil {
		if errors.Is(err, ErrStageNotFound) {
			response.NotFound(c, "Stage not found")
			return
		}
		response.Internal(c, "Failed to create lead")
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	l, err := h.service.GetLead(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to load lead")
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.UpdateLead(c.Request.Context(), companyID, id, req)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to update lead")
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLead(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to delete lead")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) MarkLost(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req MarkLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.MarkLost(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) MarkSold(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	l, err := h.service.MarkSold(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) TouchContact(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	if err := h.service.TouchLastContact(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to update lead")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) SetValue(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.SetCustomValue(c.Request.Context(), companyID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound):
			response.NotFound(c, "Lead not found")
		case errors.Is(err, ErrFieldNotFound):
			response.NotFound(c, "Custom field not found")
		case errors.Is(err, ErrValueRequired):
			response.Error(c, http.StatusUnprocessableEntity, "VALUE_REQUIRED", "This field requires a value")
		case errors.Is(err, ErrValueWrongType):
			response.Error(c, http.StatusUnprocessableEntity, "VALUE_WRONG_TYPE", "Value does not match the field type")
		case errors.Is(err, ErrOptionNotAllowed):
			response.Error(c, http.StatusUnprocessableEntity, "OPTION_NOT_ALLOWED", "Value is not one of the field options")
		default:
			response.Internal(c, "Failed to save value")
		}
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLeadNotFound):
		response.NotFound(c, "Lead not found")
	case errors.Is(err, ErrAlreadyClosed):
		response.Error(c, http.StatusConflict, "LEAD_CLOSED", "Lead is already marked lost or sold")
	default:
		response.Internal(c, "Failed to update lead")
	}
}

func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid lead id")
		return 0, false
	}
	return id, true
}
