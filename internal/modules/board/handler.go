package board

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pipelines/:id/board", h.GetBoard)
	rg.GET("/pipelines/:id/board/stats", h.GetStats)
	rg.POST("/pipelines/:id/board/stages/reorder", h.ReorderStages)
	rg.POST("/pipelines/:id/board/leads/:leadId/move", h.MoveLead)
	rg.POST("/pipelines/:id/board/leads/:leadId/move-adjacent", h.MoveLeadAdjacent)
	rg.GET("/board/window", h.ComputeWindow)
}

func (h *Handler) GetBoard(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pipeline ID")
		return
	}

	b, err := h.service.Board(c.Request.Context(), companyID, pipelineID)
	if err != nil {
		response.Internal(c, "Failed to load board")
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetStats(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pipeline ID")
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), companyID, pipelineID)
	if err != nil {
		response.Internal(c, "Failed to load board stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ReorderStages(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pipeline ID")
		return
	}

	var req ReorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	b, err := h.service.ReorderStages(c.Request.Context(), companyID, pipelineID, *req.FromIndex, *req.ToIndex)
	if err != nil {
		h.writeBoardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) MoveLead(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pipeline ID")
		return
	}
	leadID, err := strconv.ParseInt(c.Param("leadId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	var req MoveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	b, err := h.service.MoveLead(c.Request.Context(), companyID, pipelineID, leadID, req.FromStageID, req.ToStageID, *req.ToIndex)
	if err != nil {
		h.writeBoardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) MoveLeadAdjacent(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	pipelineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pipeline ID")
		return
	}
	leadID, err := strconv.ParseInt(c.Param("leadId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	var req MoveAdjacentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	b, err := h.service.MoveLeadAdjacent(c.Request.Context(), companyID, pipelineID, leadID, Direction(req.Direction))
	if err != nil {
		h.writeBoardError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ComputeWindow answers the client's virtualization query: which index
// range of a column to materialize for the current scroll position.
func (h *Handler) ComputeWindow(c *gin.Context) {
	var req WindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	w := WindowFor(req.Count, req.ScrollTop, req.ViewportHeight, req.RowHeight)
	response.Success(c, http.StatusOK, w)
}

func (h *Handler) writeBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrIndexOutOfRange):
		response.Error(c, http.StatusBadRequest, "INDEX_OUT_OF_RANGE", err.Error())
	case errors.Is(err, ErrCrossPipeline):
		response.Error(c, http.StatusUnprocessableEntity, "CROSS_PIPELINE", err.Error())
	case errors.Is(err, ErrStageNotFound):
		response.NotFound(c, "Stage not found")
	case errors.Is(err, ErrLeadNotFound):
		response.NotFound(c, "Lead not found")
	case errors.Is(err, ErrBoardClosed):
		response.Error(c, http.StatusConflict, "BOARD_CLOSED", err.Error())
	default:
		// persistence failed after the optimistic apply was rolled back
		response.Error(c, http.StatusBadGateway, "PERSIST_FAILED", err.Error())
	}
}
