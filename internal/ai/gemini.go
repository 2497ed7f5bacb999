package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrModelUnavailable means every candidate model was tried and failed.
// Individual failure causes stay in the logs, not in the error.
var ErrModelUnavailable = errors.New("all candidate models unavailable")

type GeminiConfig struct {
	BaseURL           string
	APIKey            string
	Models            []string
	SystemInstruction string
}

// GeminiClient calls the Gemini generateContent REST API with an ordered
// fallback chain: candidates are tried in order, the first success wins, and
// nothing further is attempted after it.
type GeminiClient struct {
	httpClient *http.Client
	cfg        GeminiConfig
	logger     *zap.Logger
}

func NewGeminiClient(cfg GeminiConfig, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		cfg:        cfg,
		logger:     logger,
	}
}

// Generate runs the prompt through the fallback chain. An empty prompt is
// passed through unchanged; validation happens upstream.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if len(c.cfg.Models) == 0 {
		return "", ErrModelUnavailable
	}

	failed := 0
	for _, candidate := range c.cfg.Models {
		text, err := c.generateOnce(ctx, candidate, prompt)
		if err == nil {
			if failed > 0 {
				c.logger.Info("model fallback succeeded",
					zap.String("model", candidate),
					zap.Int("failed_candidates", failed),
				)
			}
			return text, nil
		}
		failed++
		c.logger.Warn("model candidate failed",
			zap.String("model", candidate),
			zap.Error(err),
		)
	}

	return "", fmt.Errorf("%w: %d candidates tried", ErrModelUnavailable, failed)
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

func (c *GeminiClient) generateOnce(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if c.cfg.SystemInstruction != "" {
		reqBody.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: c.cfg.SystemInstruction}},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request failed: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build gemini request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse gemini json failed: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("empty gemini candidates")
	}

	var full strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		full.WriteString(part.Text)
	}
	return full.String(), nil
}
