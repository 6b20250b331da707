// Package ai calls a Groq-hosted chat model to enhance product copy. The
// model is told to return strict JSON; because models drift, the response
// goes through a small extract-and-repair step before it is trusted.
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
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	requestTimeout = 60 * time.Second
	temperature    = 0.7
	maxTokens      = 700
)

// ErrUpstream marks failures of the model call itself, as opposed to
// failures interpreting its output. Handlers map it to a client error.
var ErrUpstream = errors.New("model call failed")

// Client is a minimal chat-completions client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// ProductInput carries the product fields interpolated into the prompt.
type ProductInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Sizes       []string
	Colors      []string
}

// Result is the enhancement contract the model must satisfy.
type Result struct {
	EnhancedDescription string   `json:"enhanced_description"`
	MetaKeywords        []string `json:"meta_keywords"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Enhance asks the model for an enhanced description and meta keywords.
func (c *Client) Enhance(ctx context.Context, in ProductInput) (*Result, error) {
	if c.apiKey == "" {
		return nil, errors.New("GROQ_API_KEY not set")
	}

	raw, err := c.complete(ctx, buildPrompt(in))
	if err != nil {
		return nil, err
	}
	return extractResult(raw)
}

func buildPrompt(in ProductInput) string {
	return fmt.Sprintf(`You are an e-commerce SEO expert.
Return ONLY JSON with two fields:
{"enhanced_description":"...", "meta_keywords":["...","..."]}

Product:
Name: %s
Category: %s
Description: %s
Price: %g
Sizes: %s
Colors: %s

Rules:
- enhanced_description: 120-200 words
- meta_keywords: 10-15 long-tail keywords
- DO NOT output anything outside the JSON object`,
		in.Name, in.Category, in.Description, in.Price,
		strings.Join(in.Sizes, ", "), strings.Join(in.Colors, ", "))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w: %s (%d)", ErrUpstream, apiErr.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUpstream)
	}
	return chat.Choices[0].Message.Content, nil
}

// extractResult pulls the first top-level JSON object out of raw model
// output. On a parse failure it trims to the last '}' and retries once,
// which recovers from trailing prose after the object.
func extractResult(raw string) (*Result, error) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return nil, errors.New("model output contains no JSON object")
	}

	blob := raw[start:]
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &fields); err != nil {
		last := strings.LastIndex(blob, "}")
		if last == -1 {
			return nil, errors.New("failed to parse model JSON output")
		}
		blob = blob[:last+1]
		if err := json.Unmarshal([]byte(blob), &fields); err != nil {
			return nil, errors.New("failed to parse model JSON output")
		}
	}

	if _, ok := fields["enhanced_description"]; !ok {
		return nil, errors.New("model JSON missing enhanced_description")
	}
	if _, ok := fields["meta_keywords"]; !ok {
		return nil, errors.New("model JSON missing meta_keywords")
	}

	var result Result
	if err := json.Unmarshal([]byte(blob), &result); err != nil {
		return nil, fmt.Errorf("model JSON has wrong field types: %w", err)
	}
	return &result, nil
}
