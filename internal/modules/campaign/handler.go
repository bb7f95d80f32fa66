package campaign

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
	campaigns := protected.Group("/campaigns")
	{
		campaigns.GET("", h.List)
		campaigns.POST("", h.Create)
		campaigns.GET("/:id", h.Get)
		campaigns.PUT("/:id", h.Update)
		campaigns.DELETE("/:id", h.Delete)
		campaigns.POST("/:id/start", h.Start)
		campaigns.POST("/:id/pause", h.Pause)
	}

	greetings := protected.Group("/greetings")
	{
		greetings.GET("", h.ListGreetings)
		greetings.POST("", h.CreateGreeting)
		greetings.PUT("/:id", h.UpdateGreeting)
		greetings.DELETE("/:id", h.DeleteGreeting)
	}
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	campaigns, err := h.service.ListCampaigns(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "Failed to list campaigns")
		return
	}
	response.Success(c, http.StatusOK, campaigns)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreateCampaign(c.Request.Context(), companyID, req)
	if err != nil {
		response.Internal(c, "Failed to create campaign")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	campaign, err := h.service.GetCampaign(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeError(c, err, "Failed to load campaign")
		return
	}
	response.Success(c, http.StatusOK, campaign)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	campaign, err := h.service.UpdateCampaign(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update campaign")
		return
	}
	response.Success(c, http.StatusOK, campaign)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCampaign(c.Request.Context(), companyID, id); err != nil {
		h.writeError(c, err, "Failed to delete campaign")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Start(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	campaign, err := h.service.Start(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeError(c, err, "Failed to start campaign")
		return
	}
	response.Success(c, http.StatusOK, campaign)
}

func (h *Handler) Pause(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	campaign, err := h.service.Pause(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeError(c, err, "Failed to pause campaign")
		return
	}
	response.Success(c, http.StatusOK, campaign)
}

func (h *Handler) ListGreetings(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	greetings, err := h.service.ListGreetings(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "Failed to list greetings")
		return
	}
	response.Success(c, http.StatusOK, greetings)
}

func (h *Handler) CreateGreeting(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreateGreetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	g, err := h.service.CreateGreeting(c.Request.Context(), companyID, req)
	if err != nil {
		response.Internal(c, "Failed to create greeting")
		return
	}
	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) UpdateGreeting(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateGreetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	g, err := h.service.UpdateGreeting(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update greeting")
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) DeleteGreeting(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteGreeting(c.Request.Context(), companyID, id); err != nil {
		h.writeError(c, err, "Failed to delete greeting")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCampaignNotFound):
		response.NotFound(c, "Campaign not found")
	case errors.Is(err, ErrGreetingNotFound):
		response.NotFound(c, "Greeting not found")
	case errors.Is(err, ErrWrongStatus):
		response.Error(c, http.StatusConflict, "WRONG_STATUS", "Campaign status does not allow this transition")
	case errors.Is(err, ErrSignalFailed):
		response.Error(c, http.StatusBadGateway, "SIGNAL_FAILED", "The automation engine rejected the signal")
	default:
		response.Internal(c, fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
