package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradejournal/src/connectors"
	"tradejournal/src/model"
)

type mockJournalStore struct {
	entries []model.JournalEntry
	created *model.JournalEntry
	updated *model.JournalEntry
	found   *model.JournalEntry
	err     error
}

func (m *mockJournalStore) Create(ctx context.Context, entry *model.JournalEntry) error {
	m.created = entry
	return m.err
}

func (m *mockJournalStore) FindByID(ctx context.Context, id string, userID uint) (*model.JournalEntry, error) {
	return m.found, m.err
}

func (m *mockJournalStore) ListByUser(ctx context.Context, userID uint) ([]model.JournalEntry, error) {
	return m.entries, m.err
}

func (m *mockJournalStore) Update(ctx context.Context, entry *model.JournalEntry) error {
	m.updated = entry
	return m.err
}

func (m *mockJournalStore) Delete(ctx context.Context, id string, userID uint) error {
	return m.err
}

type mockSummarizer struct {
	summary    string
	err        error
	gotPrompt  string
	gotTrades  []model.Trade
	gotEntries []model.JournalEntry
}

func (m *mockSummarizer) Summarize(ctx context.Context, trades []model.Trade, entries []model.JournalEntry, prompt string) (string, error) {
	m.gotTrades = trades
	m.gotEntries = entries
	m.gotPrompt = prompt
	return m.summary, m.err
}

func TestInsightsHandler_Success(t *testing.T) {
	trades := &mockTradeStore{trades: []model.Trade{{ID: "trade-1"}}}
	journal := &mockJournalStore{entries: []model.JournalEntry{{ID: "entry-1"}}}
	ai := &mockSummarizer{summary: "Tighten your stops."}
	handler := InsightsHandler(trades, journal, ai)

	req := authed(httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(`{"prompt":"How am I doing?"}`)))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response InsightsResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.Equal(t, "Tighten your stops.", response.Summary)
	assert.Equal(t, "How am I doing?", ai.gotPrompt)
	assert.Len(t, ai.gotTrades, 1)
	assert.Len(t, ai.gotEntries, 1)
}

func TestInsightsHandler_FeedsJournalChronologically(t *testing.T) {
	// The store lists newest first for the journal view. The shaper drops
	// items from the front of the slice when over budget, so the handler
	// must hand it oldest-first or truncation would discard the newest
	// entries instead.
	newest := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	journal := &mockJournalStore{entries: []model.JournalEntry{
		{ID: "entry-3", Date: newest},
		{ID: "entry-2", Date: newest.AddDate(0, 0, -1)},
		{ID: "entry-1", Date: newest.AddDate(0, 0, -2)},
	}}
	ai := &mockSummarizer{summary: "ok"}
	handler := InsightsHandler(&mockTradeStore{}, journal, ai)

	req := authed(httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(`{"prompt":"review me"}`)))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(ai.gotEntries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ai.gotEntries))
	}
	for i, want := range []string{"entry-1", "entry-2", "entry-3"} {
		if ai.gotEntries[i].ID != want {
			t.Fatalf("entry %d: expected %s, got %s", i, want, ai.gotEntries[i].ID)
		}
	}
}

func TestInsightsHandler_MissingPrompt(t *testing.T) {
	handler := InsightsHandler(&mockTradeStore{}, &mockJournalStore{}, &mockSummarizer{})

	req := authed(httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(`{}`)))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestInsightsHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing key",
			err:        connectors.ErrMissingAPIKey,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "AI summaries are not configured",
		},
		{
			name:       "upstream rejection",
			err:        &connectors.UpstreamError{Status: 429, Body: "rate limited"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "connection failure",
			err:        &connectors.ConnectionError{Err: assert.AnError},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "anything else",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := InsightsHandler(&mockTradeStore{}, &mockJournalStore{}, &mockSummarizer{err: tt.err})

			req := authed(httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(`{"prompt":"review me"}`)))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Fatalf("expected body to contain %q, got %q", tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestTradeFeedbackHandler(t *testing.T) {
	stored := &model.Trade{ID: "trade-1", UserID: 1, Pair: "EURUSD"}
	ai := &mockSummarizer{summary: "Solid entry, tighten the stop."}
	handler := TradeFeedbackHandler(&mockTradeStore{findResult: stored}, ai)

	req := authed(httptest.NewRequest(http.MethodPost, "/trades/trade-1/feedback", nil))
	req = withURLParam(req, "id", "trade-1")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response InsightsResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.Equal(t, "Solid entry, tighten the stop.", response.Summary)

	if len(ai.gotTrades) != 1 || ai.gotTrades[0].ID != "trade-1" {
		t.Fatalf("expected exactly the stored trade, got %+v", ai.gotTrades)
	}
	assert.Empty(t, ai.gotEntries)
	assert.Contains(t, ai.gotPrompt, "Analyze the following trade setup")
}

func TestTradeFeedbackHandler_NotFound(t *testing.T) {
	handler := TradeFeedbackHandler(&mockTradeStore{}, &mockSummarizer{})

	req := authed(httptest.NewRequest(http.MethodPost, "/trades/missing/feedback", nil))
	req = withURLParam(req, "id", "missing")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestInsightsHandler_TradesLoadFailure(t *testing.T) {
	handler := InsightsHandler(&mockTradeStore{err: assert.AnError}, &mockJournalStore{}, &mockSummarizer{})

	req := authed(httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(`{"prompt":"review me"}`)))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}
