package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genai-chat/internal/app"
	"genai-chat/internal/transport/http/response"
)

type KeywordHandler struct {
	keywordService *app.KeywordService
}

type KeywordRequest struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

func NewKeywordHandler(keywordService *app.KeywordService) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService}
}

func (h *KeywordHandler) List(c *gin.Context) {
	keywords, err := h.keywordService.List()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, keywords)
}

func (h *KeywordHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Fail(c, http.StatusBadRequest, "Search query is required")
		return
	}

	keywords, err := h.keywordService.Search(query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, keywords)
}

func (h *KeywordHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	keyword, err := h.keywordService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrKeywordNotFound) {
			response.Fail(c, http.StatusNotFound, "Keyword not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusOK, keyword)
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req KeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	keyword, err := h.keywordService.Create(req.Title, req.Prompt)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Fail(c, http.StatusBadRequest, "Title and prompt are required")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Data(c, http.StatusCreated, keyword)
}

func (h *KeywordHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req KeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.keywordService.Update(id, req.Title, req.Prompt); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Fail(c, http.StatusBadRequest, "Title and prompt are required")
		case errors.Is(err, app.ErrKeywordNotFound):
			response.Fail(c, http.StatusNotFound, "Keyword not found")
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	response.Message(c, "Keyword updated successfully")
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.keywordService.Delete(id); err != nil {
		if errors.Is(err, app.ErrKeywordNotFound) {
			response.Fail(c, http.StatusNotFound, "Keyword not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Message(c, "Keyword deleted successfully")
}
