package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"genai-chat/internal/app"
	"genai-chat/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type CreateChatRequest struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	KeywordID   *uint  `json:"keyword_id"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.chatService.List()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, chats)
}

func (h *ChatHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	chat, err := h.chatService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrChatNotFound) {
			response.Fail(c, http.StatusNotFound, "Chat not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, chat)
}

func (h *ChatHandler) Create(c *gin.Context) {
	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	chat, err := h.chatService.Create(req.UserMessage, req.AIResponse, req.KeywordID)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Fail(c, http.StatusBadRequest, "User message and AI response are required")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusCreated, chat)
}

func (h *ChatHandler) ListByKeyword(c *gin.Context) {
	keywordID64, err := strconv.ParseUint(c.Param("keywordId"), 10, 64)
	if err != nil || keywordID64 == 0 {
		response.Fail(c, http.StatusBadRequest, "invalid keyword id")
		return
	}

	chats, err := h.chatService.ListByKeyword(uint(keywordID64))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, chats)
}

func (h *ChatHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.chatService.Delete(id); err != nil {
		if errors.Is(err, app.ErrChatNotFound) {
			response.Fail(c, http.StatusNotFound, "Chat not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Message(c, "Chat deleted successfully")
}

// pathID parses the :id path segment; callers write their own error body.
func pathID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}
