package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"genai-chat/internal/ai"
	"genai-chat/internal/app"
	"genai-chat/internal/pkg/extract"
	"genai-chat/internal/transport/http/response"
)

type AIHandler struct {
	askService *app.AskService
	uploadDir  string
}

type AskTextRequest struct {
	Text      string `json:"text"`
	KeywordID *uint  `json:"keyword_id"`
	SessionID *uint  `json:"session_id"`
}

func NewAIHandler(askService *app.AskService, uploadDir string) *AIHandler {
	return &AIHandler{askService: askService, uploadDir: uploadDir}
}

func (h *AIHandler) AskText(c *gin.Context) {
	var req AskTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.askService.AskText(c.Request.Context(), app.AskInput{
		Text:      req.Text,
		KeywordID: req.KeywordID,
		SessionID: req.SessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTextRequired):
			response.Error(c, http.StatusBadRequest, "Text is required.")
		case errors.Is(err, ai.ErrModelUnavailable):
			response.Error(c, http.StatusBadGateway, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// AskFile saves the multipart upload under a uuid name and hands the path to
// the orchestrator, which owns its deletion from there.
func (h *AIHandler) AskFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "File is required.")
		return
	}

	path := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		response.Error(c, http.StatusInternalServerError, "save upload failed")
		return
	}

	result, err := h.askService.AskFile(c.Request.Context(), app.AskFileInput{
		FilePath:  path,
		FileName:  file.Filename,
		FileSize:  file.Size,
		Text:      c.PostForm("text"),
		KeywordID: parseOptionalUint(c.PostForm("keyword_id")),
		SessionID: parseOptionalUint(c.PostForm("session_id")),
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFileType):
			response.Error(c, http.StatusBadRequest, "Unsupported file type.")
		case errors.Is(err, ai.ErrModelUnavailable):
			response.Error(c, http.StatusBadGateway, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseOptionalUint(raw string) *uint {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return nil
	}
	value := uint(parsed)
	return &value
}
