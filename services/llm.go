// services/llm.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/shared"
)

// LLMService is a thin client for an OpenAI-compatible chat completion
// endpoint. It returns raw completion text; callers own prompt construction
// and response parsing.
type LLMService struct {
	context.DefaultService

	baseURL string
	apiKey  string
	model   string

	client *http.Client
}

const LLM_SVC = "llm_svc"

func (svc LLMService) Id() string {
	return LLM_SVC
}

func (svc *LLMService) Configure(ctx *context.Context) error {
	svc.baseURL = os.Getenv("LLM_BASE_URL")
	svc.apiKey = os.Getenv("LLM_API_KEY")
	svc.model = os.Getenv("LLM_MODEL")

	if svc.baseURL == "" {
		svc.baseURL = "https://api.openai.com/v1"
	}
	if svc.model == "" {
		svc.model = "gpt-4o-mini"
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("LLM_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}
	svc.client = &http.Client{Timeout: timeout}

	return svc.DefaultService.Configure(ctx)
}

func (svc *LLMService) Start() error {
	if svc.apiKey == "" {
		log.Warn("LLM_API_KEY not set; generation endpoints will fail upstream")
	}
	return nil
}

// ModelName is recorded on generated content for provenance.
func (svc *LLMService) ModelName() string {
	return svc.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one system+user exchange and returns the completion text.
// Failures surface as upstream errors; the caller never retries here.
func (svc *LLMService) Complete(systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: svc.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.7,
		ResponseFormat: map[string]any{"type": "json_object"},
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", shared.NewInternalError(err, "failed to encode completion request")
	}

	req, err := http.NewRequest(http.MethodPost, svc.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", shared.NewInternalError(err, "failed to build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)

	resp, err := svc.client.Do(req)
	if err != nil {
		return "", shared.NewUpstreamError(err, "language model request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", shared.NewUpstreamError(err, "failed to read language model response")
	}

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"status": resp.StatusCode,
			"model":  svc.model,
		}).Warn("Language model returned non-200")
		return "", shared.NewUpstreamError(
			fmt.Errorf("llm status %d: %s", resp.StatusCode, truncate(string(raw), 200)),
			"language model rejected the request")
	}

	var parsed chatResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return "", shared.NewUpstreamError(err, "language model returned malformed JSON")
	}
	if parsed.Error != nil {
		return "", shared.NewUpstreamError(fmt.Errorf("%s", parsed.Error.Message), "language model error")
	}
	if len(parsed.Choices) == 0 {
		return "", shared.NewUpstreamError(fmt.Errorf("no choices in response"), "language model returned no completion")
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
