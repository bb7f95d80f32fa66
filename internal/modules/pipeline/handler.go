package pipeline

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

// RegisterRoutes mounts read endpoints for every authenticated user.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	pipelines := protected.Group("/pipelines")
	{
		pipelines.GET("", h.List)
		pipelines.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes mounts the structural mutations.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	pipelines := admin.Group("/pipelines")
	{
		pipelines.POST("", h.Create)
		pipelines.PUT("/:id", h.Rename)
		pipelines.DELETE("/:id", h.Delete)
		pipelines.POST("/:id/stages", h.AddStage)
		pipelines.PUT("/:id/stages/:stageId", h.UpdateStage)
		pipelines.DELETE("/:id/stages/:stageId", h.DeleteStage)
	}
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	pipelines, err := h.service.ListPipelines(c.Request.Context(), companyID)
	if err != nil {
		response.Internal(c, "Failed to list pipelines")
		return
	}
	response.Success(c, http.StatusOK, pipelines)
}

func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPipeline(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			response.NotFound(c, "Pipeline not found")
			return
		}
		response.Internal(c, "Failed to load pipeline")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req CreatePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreatePipeline(c.Request.Context(), companyID, req)
	if err != nil {
		response.Internal(c, "Failed to create pipeline")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Rename(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RenamePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RenamePipeline(c.Request.Context(), companyID, id, req); err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			response.NotFound(c, "Pipeline not found")
			return
		}
		response.Internal(c, "Failed to rename pipeline")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "name": req.Name})
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePipeline(c.Request.Context(), companyID, id); err != nil {
		if errors.Is(err, ErrPipelineNotFound) {
			response.NotFound(c, "Pipeline not found")
			return
		}
		response.Internal(c, "Failed to delete pipeline")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) AddStage(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	stage, err := h.service.AddStage(c.Request.Context(), companyID, pipelineID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPipelineNotFound):
			response.NotFound(c, "Pipeline not found")
		case errors.Is(err, ErrDuplicateStage):
			response.Error(c, http.StatusConflict, "DUPLICATE_STAGE", "A stage with this name already exists")
		default:
			response.Internal(c, "Failed to create stage")
		}
		return
	}
	response.Success(c, http.StatusCreated, stage)
}

func (h *Handler) UpdateStage(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stageID, ok := pathID(c, "stageId")
	if !ok {
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	stage, err := h.service.UpdateStage(c.Request.Context(), companyID, pipelineID, stageID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStageNotFound):
			response.NotFound(c, "Stage not found")
		case errors.Is(err, ErrDuplicateStage):
			response.Error(c, http.StatusConflict, "DUPLICATE_STAGE", "A stage with this name already exists")
		default:
			response.Internal(c, "Failed to update stage")
		}
		return
	}
	response.Success(c, http.StatusOK, stage)
}

func (h *Handler) DeleteStage(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stageID, ok := pathID(c, "stageId")
	if !ok {
		return
	}

	if err := h.service.DeleteStage(c.Request.Context(), companyID, pipelineID, stageID); err != nil {
		switch {
		case errors.Is(err, ErrStageNotFound):
			response.NotFound(c, "Stage not found")
		case errors.Is(err, ErrLastStage):
			response.Error(c, http.StatusUnprocessableEntity, "LAST_STAGE", "A pipeline must keep at least one stage")
		default:
			response.Internal(c, "Failed to delete stage")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": stageID})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
