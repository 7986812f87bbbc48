package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"currency-advisor/backend-go/internal/config"
)

// Completer is the external completion service the AI path talks to. Tests
// substitute a deterministic stub.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GroqClient calls the OpenAI-compatible chat-completions endpoint with a
// forced JSON response format and a low temperature. A circuit breaker keeps
// a flapping upstream from delaying every cycle.
type GroqClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	hc          *http.Client
	cb          *circuitBreaker
}

func NewGroqClient(cfg config.Config) *GroqClient {
	return &GroqClient{
		baseURL:     cfg.GroqBaseURL,
		apiKey:      cfg.GroqAPIKey,
		model:       cfg.GroqModel,
		temperature: cfg.AITemperature,
		maxTokens:   cfg.AIMaxTokens,
		hc:          &http.Client{Timeout: cfg.AITimeout},
		cb:          newCircuitBreaker(cfg.CircuitFailLimit, cfg.CircuitCooldown),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("groq api key not configured")
	}
	if !c.cb.allow() {
		return "", errors.New("groq circuit breaker open")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.hc.Do(req)
	if err != nil {
		c.cb.fail()
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		c.cb.fail()
		return "", fmt.Errorf("groq api: %s", res.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		c.cb.fail()
		return "", fmt.Errorf("groq response: %w", err)
	}
	if len(out.Choices) == 0 {
		c.cb.fail()
		return "", errors.New("groq response: no choices")
	}

	c.cb.success()
	return out.Choices[0].Message.Content, nil
}

type circuitBreaker struct {
	mu        sync.Mutex
	failures  int
	threshold int
	openedAt  time.Time
	cooldown  time.Duration
}

func newCircuitBreaker(threshold int, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{threshold: threshold, cooldown: cooldown}
}

func (c *circuitBreaker) allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failures < c.threshold {
		return true
	}
	if time.Since(c.openedAt) > c.cooldown {
		c.failures = 0
		c.openedAt = time.Time{}
		return true
	}
	return false
}

func (c *circuitBreaker) success() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.openedAt = time.Time{}
}

func (c *circuitBreaker) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.failures >= c.threshold {
		c.openedAt = time.Now()
	}
}
