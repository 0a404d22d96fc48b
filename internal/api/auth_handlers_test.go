package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/kokorocoach/server/adapters/sqlite"
	"github.com/kokorocoach/server/domain/entities"
	"github.com/kokorocoach/server/internal/auth"
)

// newStorageBackedServer wires the REST surface to a real in-memory
// store so the auth and CRUD flows run end to end.
func newStorageBackedServer(t *testing.T, whitelist []string) *echo.Echo {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	srv := NewServer(
		&stubChatExecutor{},
		&stubTitleSummarizer{},
		sqlite.NewUserStore(store),
		sqlite.NewSessionStore(store),
		sqlite.NewFavoriteStore(store),
		issuer,
		whitelist,
		zaptest.NewLogger(t),
	)
	e := echo.New()
	srv.Register(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"`+email+`","password":"secret-1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"`+email+`","password":"secret-1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	var token TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &token); err != nil {
		t.Fatalf("invalid token JSON: %v", err)
	}
	return token.AccessToken
}

func TestRegisterLoginAndMe(t *testing.T) {
	e := newStorageBackedServer(t, nil)
	token := registerAndLogin(t, e, "learner@example.com")

	// Duplicate registration is rejected.
	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"learner@example.com","password":"other"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: expected 400, got %d", rec.Code)
	}

	// Wrong password is rejected.
	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"learner@example.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", rec.Code)
	}

	// /me requires a token.
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /me: expected 401, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("/me: expected 200, got %d", rec.Code)
	}
	var me entities.User
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("invalid user JSON: %v", err)
	}
	if me.Timezone == nil || *me.Timezone != "Asia/Shanghai" {
		t.Error("expected default timezone backfill on first /me")
	}
	if strings.Contains(rec.Body.String(), "hashed_password") {
		t.Error("password hash must never appear in responses")
	}
}

func TestRegisterWhitelist(t *testing.T) {
	e := newStorageBackedServer(t, []string{"invited@example.com"})

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"stranger@example.com","password":"secret-1"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-whitelisted email, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"invited@example.com","password":"secret-1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for whitelisted email, got %d", rec.Code)
	}
}

func TestUpdateMePasswordChange(t *testing.T) {
	e := newStorageBackedServer(t, nil)
	token := registerAndLogin(t, e, "learner@example.com")

	// Missing current password.
	rec := doJSON(e, http.MethodPut, "/api/auth/me", `{"new_password":"longer-secret"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without current password, got %d", rec.Code)
	}

	// Too-short new password.
	rec = doJSON(e, http.MethodPut, "/api/auth/me",
		`{"current_password":"secret-1","new_password":"abc"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", rec.Code)
	}

	// Successful change, then login with the new password.
	rec = doJSON(e, http.MethodPut, "/api/auth/me",
		`{"current_password":"secret-1","new_password":"longer-secret","username":"たろう"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"learner@example.com","password":"longer-secret"}`, "")
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password: expected 200, got %d", rec.Code)
	}
}

func TestSessionAndFavoriteFlow(t *testing.T) {
	e := newStorageBackedServer(t, nil)
	token := registerAndLogin(t, e, "learner@example.com")

	rec := doJSON(e, http.MethodPost, "/api/sessions",
		`{"title":"買い物","conversation_style":"casual"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", rec.Code)
	}
	var session entities.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("invalid session JSON: %v", err)
	}

	rec = doJSON(e, http.MethodPost, "/api/sessions/"+session.ID+"/messages",
		`{"role":"user","content":"こんにちは","translation":"你好"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add message: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/sessions/"+session.ID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get session: expected 200, got %d", rec.Code)
	}
	var got entities.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid session JSON: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "こんにちは" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}

	rec = doJSON(e, http.MethodGet, "/api/sessions/does-not-exist", "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/favorites",
		`{"text":"お世話になっております","translation":"麻烦您了"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create favorite: expected 201, got %d", rec.Code)
	}
	var favorite entities.Favorite
	if err := json.Unmarshal(rec.Body.Bytes(), &favorite); err != nil {
		t.Fatalf("invalid favorite JSON: %v", err)
	}

	rec = doJSON(e, http.MethodPut, "/api/favorites/"+favorite.ID,
		`{"mastery":3,"mark_reviewed":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update favorite: expected 200, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/favorites/"+favorite.ID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete favorite: expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/sessions/"+session.ID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete session: expected 204, got %d", rec.Code)
	}
}
