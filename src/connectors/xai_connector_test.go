package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradejournal/src/model"
)

func testConfig(url, key string) Config {
	return Config{
		XAIAPIURL:      url,
		XAIAPIKey:      key,
		XAIModel:       "grok-2-1212",
		XAITemperature: 0.2,
		XAITimeoutSecs: 5,
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("empty text should estimate 0 tokens, got %d", got)
	}
	// 10 words * 1.3 = 13
	if got := EstimateTokens(strings.Repeat("word ", 10)); got != 13 {
		t.Fatalf("expected 13 tokens, got %d", got)
	}
	// 3 words * 1.3 = 3.9, ceiled to 4
	if got := EstimateTokens("one two three"); got != 4 {
		t.Fatalf("expected 4 tokens, got %d", got)
	}
}

func TestBuildUserContentIncludesEverythingWhenSmall(t *testing.T) {
	trades := []model.Trade{{ID: "trade-1", Pair: "EURUSD", Profit: 50}}
	entries := []model.JournalEntry{{ID: "entry-1", Content: "solid entry, followed the plan"}}

	content := BuildUserContent(trades, entries, "How am I doing?")

	assert.Contains(t, content, "How am I doing?")
	assert.Contains(t, content, "Trades:")
	assert.Contains(t, content, "Journal Entries:")
	assert.Contains(t, content, "trade-1")
	assert.Contains(t, content, "entry-1")
}

func TestBuildUserContentShrinksJournalFirst(t *testing.T) {
	// 30 entries x 4000 words is far over the budget; 20 entries fit.
	// The shrink must drop the oldest entries in steps of 10.
	bigContent := strings.Repeat("word ", 4000)
	var entries []model.JournalEntry
	for i := 0; i < 30; i++ {
		entries = append(entries, model.JournalEntry{
			ID:      fmt.Sprintf("entry-%02d", i),
			Content: bigContent,
		})
	}

	content := BuildUserContent(nil, entries, "summarize")

	if EstimateTokens(content) >= maxTokenBudget {
		t.Fatalf("shrunken content still over budget: %d tokens", EstimateTokens(content))
	}
	assert.Contains(t, content, "entry-29")
	assert.Contains(t, content, "entry-10")
	assert.NotContains(t, content, "entry-09")
}

func TestBuildUserContentHardCapsAtThousandItems(t *testing.T) {
	var trades []model.Trade
	for i := 0; i < 1005; i++ {
		trades = append(trades, model.Trade{ID: fmt.Sprintf("trade-%04d", i)})
	}

	content := BuildUserContent(trades, nil, "summarize")

	assert.Contains(t, content, "trade-1004")
	assert.NotContains(t, content, "trade-0004")
}

func TestBuildUserContentFallsBackToBarePrompt(t *testing.T) {
	// A prompt that alone exceeds the budget can never fit with data
	// attached; the loop must terminate and send the prompt by itself.
	hugePrompt := strings.Repeat("word ", maxTokenBudget)
	trades := []model.Trade{{ID: "trade-1"}}

	content := BuildUserContent(trades, nil, hugePrompt)

	if content != hugePrompt {
		t.Fatal("expected bare prompt fallback")
	}
}

func TestSummarizeSuccess(t *testing.T) {
	var received chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Focus on risk management."}}]}`))
	}))
	defer server.Close()

	client := NewXAIClient(testConfig(server.URL, "test-key"))

	summary, err := client.Summarize(context.Background(),
		[]model.Trade{{ID: "trade-1", Pair: "EURUSD"}},
		[]model.JournalEntry{{ID: "entry-1", Content: "notes"}},
		"How did I trade this week?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, "Focus on risk management.", summary)
	assert.Equal(t, "grok-2-1212", received.Model)
	assert.InDelta(t, 0.2, received.Temperature, 1e-9)
	if len(received.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(received.Messages))
	}
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, systemPrompt, received.Messages[0].Content)
	assert.Contains(t, received.Messages[1].Content, "trade-1")
}

func TestSummarizeEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewXAIClient(testConfig(server.URL, "test-key"))

	summary, err := client.Summarize(context.Background(), nil, nil, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "" {
		t.Fatalf("expected empty summary, got %q", summary)
	}
}

func TestSummarizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewXAIClient(testConfig(server.URL, "test-key"))

	_, err := client.Summarize(context.Background(), nil, nil, "prompt")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Body, "rate limited")
}

func TestSummarizeConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewXAIClient(testConfig(url, "test-key"))

	_, err := client.Summarize(context.Background(), nil, nil, "prompt")

	var connection *ConnectionError
	if !errors.As(err, &connection) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}

func TestSummarizeMissingCredential(t *testing.T) {
	client := NewXAIClient(testConfig("http://127.0.0.1:0", ""))

	_, err := client.Summarize(context.Background(), nil, nil, "prompt")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
