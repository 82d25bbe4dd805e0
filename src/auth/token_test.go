package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradejournal/src/model"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	userID, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken(42, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func TestGetUserFromContext(t *testing.T) {
	user := &model.User{ID: 7}
	ctx := context.WithValue(context.Background(), UserKey, user)

	got, ok := GetUserFromContext(ctx)
	if !ok || got == nil {
		t.Fatal("expected user to be present in context")
	}
	if got.ID != 7 {
		t.Fatalf("expected user id 7, got %d", got.ID)
	}

	if _, ok := GetUserFromContext(context.Background()); ok {
		t.Fatal("expected no user in an empty context")
	}
}

type mockUserLoader struct {
	user *model.User
	err  error
}

func (m *mockUserLoader) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return m.user, m.err
}

func TestAuthenticatedRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})

	middleware := Authenticated(&mockUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/trades", nil)
	rr := httptest.NewRecorder()

	middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestAuthenticatedLoadsUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken(7, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	middleware := Authenticated(&mockUserLoader{user: &model.User{ID: 7}})

	req := httptest.NewRequest(http.MethodGet, "/trades", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if seen == nil || seen.ID != 7 {
		t.Fatalf("expected user 7 in request context, got %+v", seen)
	}
}

func TestAuthenticatedUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken(9, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	middleware := Authenticated(&mockUserLoader{})

	req := httptest.NewRequest(http.MethodGet, "/trades", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unknown user")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}
