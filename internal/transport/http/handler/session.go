package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-chat/internal/app"
	"genai-chat/internal/repository"
	"genai-chat/internal/transport/http/response"
)

type SessionHandler struct {
	sessionService *app.SessionService
}

type CreateSessionRequest struct {
	Title        string `json:"title"`
	FirstMessage string `json:"first_message"`
}

type RenameSessionRequest struct {
	Title string `json:"title"`
}

type AddChatRequest struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	KeywordID   *uint  `json:"keyword_id"`
}

func NewSessionHandler(sessionService *app.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessionService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid session id")
		return
	}

	session, chats, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Chat session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "chats": chats})
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	session, err := h.sessionService.Create(req.Title, req.FirstMessage)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "First message is required")
		case errors.Is(err, repository.ErrSchemaNotReady):
			response.Error(c, http.StatusServiceUnavailable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *SessionHandler) Rename(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid session id")
		return
	}

	var req RenameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.sessionService.Rename(id, req.Title); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "Title is required")
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Chat session not found")
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat session updated successfully"})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "Chat session not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat session deleted successfully"})
}

func (h *SessionHandler) AddChat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid session id")
		return
	}

	var req AddChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	chat, err := h.sessionService.AddChat(c.Request.Context(), id, req.UserMessage, req.AIResponse, req.KeywordID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "User message and AI response are required")
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, "Chat session not found")
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chat": chat})
}
