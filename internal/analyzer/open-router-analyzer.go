package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sourabh71/AI-Analyst/internal/utils"
)

type Analyzer interface {
	Analyze(ctx context.Context, prompt, apiKey string) (string, error)
}

type Options struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

type openRouterAnalyzer struct {
	endpoint string
	model    string
	logger   *utils.Logger
	client   *http.Client
}

type OpenRouterRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenRouterResponse struct {
	Choices []Choice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type Choice struct {
	Message *struct {
		Content *string `json:"content"`
	} `json:"message"`
}

func NewOpenRouterAnalyzer(opts Options, logger *utils.Logger) Analyzer {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &openRouterAnalyzer{
		endpoint: opts.Endpoint,
		model:    opts.Model,
		logger:   logger,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Analyze sends prompt as a single user message and returns the first
// choice's content unchanged. Nothing is retried.
func (a *openRouterAnalyzer) Analyze(ctx context.Context, prompt, apiKey string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := OpenRouterRequest{
		Model: a.model,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("LLM request failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	a.logger.Info("LLM response received",
		"status", resp.StatusCode,
		"bytes", len(body),
		"model", a.model,
		"elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("LLM API error", "status", resp.StatusCode, "body", string(body))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parseContent(body)
}

func parseContent(body []byte) (string, error) {
	var openRouterResp OpenRouterResponse
	if err := json.Unmarshal(body, &openRouterResp); err != nil {
		return "", &ResponseShapeError{Reason: fmt.Sprintf("invalid JSON: %v", err), Body: string(body)}
	}

	if len(openRouterResp.Choices) == 0 {
		reason := "no choices in response"
		if openRouterResp.Error != nil {
			reason = fmt.Sprintf("%s: %s", reason, openRouterResp.Error.Message)
		}
		return "", &ResponseShapeError{Reason: reason, Body: string(body)}
	}

	msg := openRouterResp.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", &ResponseShapeError{Reason: "first choice has no message content", Body: string(body)}
	}

	return *msg.Content, nil
}
