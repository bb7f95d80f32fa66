package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crmboard/internal/pkg/response"
	"crmboard/internal/pkg/validator"
)

const maxMediaSize = 32 << 20 // 32 MiB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	chats := protected.Group("/conversations")
	{
		chats.GET("", h.ListConversations)
		chats.GET("/:id/messages", h.ListMessages)
		chats.POST("/:id/messages", h.SendMessage)
		chats.POST("/:id/media", h.SendMedia)
	}
	protected.POST("/leads/:id/conversation", h.OpenConversation)
}

// RegisterIngressRoutes mounts the machine endpoint that external
// channel connectors post inbound messages to.
func (h *Handler) RegisterIngressRoutes(ingress *gin.RouterGroup) {
	ingress.POST("/messages/inbound", h.ReceiveInbound)
}

func (h *Handler) OpenConversation(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	leadID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid lead id")
		return
	}
	channelID := c.DefaultQuery("channel_id", "default")

	conv, err := h.service.GetOrCreateConversation(c.Request.Context(), companyID, leadID, channelID)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to open conversation")
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) ListConversations(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	convs, err := h.service.ListConversations(c.Request.Context(), companyID, q)
	if err != nil {
		response.Internal(c, "Failed to list conversations")
		return
	}
	response.Success(c, http.StatusOK, convs)
}

func (h *Handler) ListMessages(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	convID, ok := conversationID(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	msgs, err := h.service.ListMessages(c.Request.Context(), companyID, convID, q)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			response.NotFound(c, "Conversation not found")
			return
		}
		response.Internal(c, "Failed to list messages")
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) SendMessage(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	convID, ok := conversationID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), companyID, convID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrConversationNotFound):
			response.NotFound(c, "Conversation not found")
		case errors.Is(err, ErrEmptyMessage):
			response.Error(c, http.StatusUnprocessableEntity, "EMPTY_MESSAGE", "Message needs a body")
		default:
			response.Internal(c, "Failed to send message")
		}
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) SendMedia(c *gin.Context) {
	companyID := c.GetInt64("company_id")
	userID := c.GetInt64("user_id")
	convID, ok := conversationID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file is required")
		return
	}
	if fileHeader.Size > maxMediaSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the upload limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "Failed to read file")
		return
	}
	defer file.Close()

	msg, err := h.service.SendMedia(
		c.Request.Context(),
		userID, companyID, convID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		c.PostForm("caption"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrConversationNotFound):
			response.NotFound(c, "Conversation not found")
		case errors.Is(err, ErrUploadFailed):
			response.Error(c, http.StatusBadGateway, "UPLOAD_FAILED", "Media upload failed")
		default:
			response.Internal(c, "Failed to send media")
		}
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) ReceiveInbound(c *gin.Context) {
	companyID := c.GetInt64("company_id")

	var req InboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(&req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid inbound payload", fieldErrs)
		return
	}

	msg, err := h.service.ReceiveInbound(c.Request.Context(), companyID, req)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		response.Internal(c, "Failed to store message")
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid conversation id")
		return 0, false
	}
	return id, true
}
