// Package openai provides OpenAI GPT integration for recipe draft generation
package openai

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

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/infrastructure/config"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	"go.uber.org/zap"
)

// ErrNoAPIKey is returned when draft generation is requested without a
// configured API key
var ErrNoAPIKey = errors.New("openai api key is not configured")

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the AIService interface against the OpenAI
// chat-completions API
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

var _ outbound.AIService = (*Client)(nil)

// NewClient creates a new OpenAI client
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:      cfg.AI.OpenAIKey,
		baseURL:     defaultBaseURL,
		model:       cfg.AI.OpenAIModel,
		temperature: cfg.AI.Temperature,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateDraft asks the model for recipe content for the given dish title.
// The catalog's ingredient names are offered as context so the model
// prefers ingredients the site can actually filter by.
func (c *Client) GenerateDraft(ctx context.Context, title string, availableIngredients []string) (*recipe.Draft, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: c.buildSystemPrompt(availableIngredients)},
			{Role: "user", Content: fmt.Sprintf("\"%s\" 레시피를 작성해주세요. 짧은 설명과 상세한 레시피, 그리고 사용된 주재료 목록을 알려주세요.", title)},
		},
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	content, err := c.callChatCompletions(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	var draft recipe.Draft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		c.logger.Error("failed to parse model response",
			zap.Error(err),
			zap.String("response", content),
		)
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if draft.Ingredients == nil {
		draft.Ingredients = []string{}
	}
	return &draft, nil
}

// buildSystemPrompt creates the system prompt for draft generation
func (c *Client) buildSystemPrompt(availableIngredients []string) string {
	var b strings.Builder
	b.WriteString("당신은 전문 요리사입니다. 사용자가 입력한 레시피 제목을 보고 그에 맞는 상세한 레시피를 한국어로 작성해주세요.\n\n")
	b.WriteString("현재 사용 가능한 재료 목록: ")
	b.WriteString(strings.Join(availableIngredients, ", "))
	b.WriteString("\n\n가능하다면 위 목록에 있는 재료 이름을 우선적으로 사용하여 'ingredients' 배열을 구성해주세요.\n\n")
	b.WriteString(`응답은 JSON 형식으로 해주세요: {"shortDescription": "한 줄 짧은 설명 (50자 이내)", "recipe": "상세 레시피 (재료 목록과 조리 방법을 단계별로 상세히 포함)", "time": "조리 시간 (예: 30분)", "difficulty": "쉬움/보통/어려움", "ingredients": ["재료명1", "재료명2", ...]}`)
	return b.String()
}

// callChatCompletions makes the API call and returns the first choice's content
func (c *Client) callChatCompletions(ctx context.Context, reqBody chatCompletionRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Info("chat completion succeeded",
		zap.String("model", reqBody.Model),
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)
	return chatResp.Choices[0].Message.Content, nil
}
