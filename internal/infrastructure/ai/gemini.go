// Package ai provides model backends for the chat dispatcher.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	// Maximum response body size for model API responses (4MB)
	maxResponseSize = 4 << 20

	requestTimeout = 60 * time.Second
)

// geminiRequest is the generateContent request payload.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GeminiProvider calls one Gemini model via the REST API.
type GeminiProvider struct {
	id           string
	model        string
	apiKey       string
	capabilities []aiprovider.Capability
	httpClient   *http.Client
	logger       logger.Interface
}

// GeminiOptions configures a single Gemini-backed provider.
type GeminiOptions struct {
	ID           string
	Model        string
	APIKey       string
	Capabilities []aiprovider.Capability
	Logger       logger.Interface
}

func NewGeminiProvider(opts GeminiOptions) *GeminiProvider {
	return &GeminiProvider{
		id:           opts.ID,
		model:        opts.Model,
		apiKey:       opts.APIKey,
		capabilities: opts.Capabilities,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: opts.Logger,
	}
}

var _ aiprovider.Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) ID() string {
	return p.id
}

func (p *GeminiProvider) Capabilities() []aiprovider.Capability {
	return p.capabilities
}

func (p *GeminiProvider) Complete(ctx context.Context, history []aiprovider.Message, prompt string) (*aiprovider.Result, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == aiprovider.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: prompt}},
	})

	return p.generate(ctx, geminiRequest{Contents: contents}, prompt)
}

func (p *GeminiProvider) Analyze(ctx context.Context, imageData []byte, mimeType, caption string) (*aiprovider.Result, error) {
	if !aiprovider.Supports(p, aiprovider.CapabilityVision) {
		return nil, aiprovider.ErrCapabilityUnsupported
	}

	if caption == "" {
		caption = "Describe this image."
	}

	req := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: caption},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
	}

	return p.generate(ctx, req, caption)
}

func (p *GeminiProvider) Transcribe(ctx context.Context, audioData []byte, mimeType string) (*aiprovider.Result, error) {
	if !aiprovider.Supports(p, aiprovider.CapabilityAudio) {
		return nil, aiprovider.ErrCapabilityUnsupported
	}

	req := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: "Transcribe this audio verbatim. Reply with the transcript only."},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(audioData),
				}},
			},
		}},
	}

	return p.generate(ctx, req, "")
}

func (p *GeminiProvider) generate(ctx context.Context, payload geminiRequest, prompt string) (*aiprovider.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call model %s: %w", p.model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data geminiResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if data.Error != nil {
			return nil, fmt.Errorf("model %s returned %d: %s", p.model, resp.StatusCode, data.Error.Message)
		}
		return nil, fmt.Errorf("model %s returned unexpected status %d", p.model, resp.StatusCode)
	}

	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model %s returned no candidates", p.model)
	}

	var sb strings.Builder
	for _, part := range data.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()

	tokens := data.UsageMetadata.TotalTokenCount
	if tokens == 0 {
		tokens = estimateTokens(prompt, text)
	}

	p.logger.Debugw("model call succeeded",
		"provider", p.id,
		"model", p.model,
		"tokens", tokens,
	)

	return &aiprovider.Result{
		Text:       text,
		TokensUsed: tokens,
		ModelID:    p.id,
	}, nil
}

// estimateTokens approximates usage from word counts when the API omits
// usage metadata.
func estimateTokens(prompt, reply string) int {
	words := len(strings.Fields(prompt)) + len(strings.Fields(reply))
	return words * 4 / 3
}
