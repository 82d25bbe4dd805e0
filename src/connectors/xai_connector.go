package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tradejournal/src/model"
)

const (
	// maxTokenBudget is the upstream context window. Token counts are a
	// rough estimate: one whitespace-delimited word ~ 1.3 tokens.
	maxTokenBudget = 131072
	tokensPerWord  = 1.3

	// maxItems is a hard cap on how many trades/entries are ever
	// serialized, a performance ceiling rather than a budget concern.
	maxItems   = 1000
	shrinkStep = 10

	systemPrompt = "You are an expert trading coach and analyst."
)

// ErrMissingAPIKey is returned before any network call when no credential
// is configured.
var ErrMissingAPIKey = errors.New("missing xAI API key")

// UpstreamError is a non-2xx response from the completion endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("xAI API error: %d - %s", e.Status, e.Body)
}

// ConnectionError is a network-level failure before any HTTP status was
// received.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "failed to connect to xAI API: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// XAIClient talks to an OpenAI-compatible chat-completion endpoint. One
// request per Summarize call, no retries; a failed call is surfaced to the
// user for explicit re-invocation.
type XAIClient struct {
	apiURL      string
	apiKey      string
	model       string
	temperature float64
	http        *resty.Client
}

// NewXAIClient builds a client from the given config.
func NewXAIClient(config Config) *XAIClient {
	httpClient := resty.New().
		SetTimeout(time.Duration(config.XAITimeoutSecs) * time.Second)

	return &XAIClient{
		apiURL:      config.XAIAPIURL,
		apiKey:      config.XAIAPIKey,
		model:       config.XAIModel,
		temperature: config.XAITemperature,
		http:        httpClient,
	}
}

// EstimateTokens applies the word-count heuristic to a candidate payload.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Ceil(float64(words) * tokensPerWord))
}

// BuildUserContent serializes the prompt plus as much recent trade and
// journal data as fits under the token budget.
//
// The shrink order matters for output stability: the journal count drops
// first in steps of 10; once exhausted the trade count drops by 10 and the
// journal count resets. Slicing is always from the tail of the
// chronological collections, so the most recent items survive truncation.
// If nothing fits, the bare prompt is sent alone.
func BuildUserContent(trades []model.Trade, entries []model.JournalEntry, prompt string) string {
	if len(trades) > maxItems {
		trades = trades[len(trades)-maxItems:]
	}
	if len(entries) > maxItems {
		entries = entries[len(entries)-maxItems:]
	}

	var content string
	for tradeCount := len(trades); tradeCount >= 0; tradeCount -= shrinkStep {
		fits := false
		for journalCount := len(entries); journalCount >= 0; journalCount -= shrinkStep {
			content = renderContent(prompt, trades[len(trades)-tradeCount:], entries[len(entries)-journalCount:])
			if EstimateTokens(content) < maxTokenBudget {
				fits = true
				break
			}
		}
		if fits {
			break
		}
	}

	if EstimateTokens(content) >= maxTokenBudget {
		content = prompt
	}
	return content
}

func renderContent(prompt string, trades []model.Trade, entries []model.JournalEntry) string {
	tradesJSON, _ := json.MarshalIndent(trades, "", "  ")
	entriesJSON, _ := json.MarshalIndent(entries, "", "  ")

	return strings.Join([]string{
		prompt,
		"",
		"Trades:",
		string(tradesJSON),
		"",
		"Journal Entries:",
		string(entriesJSON),
	}, "\n")
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize sends one chat-completion request built from the user's trades
// and journal entries and returns the completion text.
func (c *XAIClient) Summarize(ctx context.Context, trades []model.Trade, entries []model.JournalEntry, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	userContent := BuildUserContent(trades, entries, prompt)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiKey).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userContent},
			},
			Temperature: c.temperature,
		}).
		Post(c.apiURL)

	if err != nil {
		return "", &ConnectionError{Err: err}
	}

	if resp.StatusCode()/100 != 2 {
		return "", &UpstreamError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var out chatResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to decode xAI response: %w", err)
	}

	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}
