package auth

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eastfallsrec/matchbook/internal/config"
)

func resetSessions() {
	sessionMu.Lock()
	sessionStore = make(map[string]sessionRecord)
	sessionMu.Unlock()

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret"
	appConfig = cfg
}

func requestWithCookies(t *testing.T, recorder *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/club", nil)
	for _, cookie := range recorder.Result().Cookies() {
		r.AddCookie(cookie)
	}
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	resetSessions()

	recorder := httptest.NewRecorder()
	err := CreateSession(recorder, Session{MemberID: 7, Username: "admin", IsAdmin: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	session := SessionFromRequest(requestWithCookies(t, recorder))
	if session == nil {
		t.Fatal("expected a session")
	}
	if session.MemberID != 7 || session.Username != "admin" || !session.IsAdmin {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	resetSessions()

	recorder := httptest.NewRecorder()
	if err := CreateSession(recorder, Session{MemberID: 7, Username: "admin"}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	token, _, ok := strings.Cut(cookies[0].Value, ".")
	if !ok {
		t.Fatal("cookie value should carry a signature")
	}

	appConfig.App.SecretKey = "other-secret"
	foreignSignature, err := signToken(token)
	appConfig.App.SecretKey = "test-secret"
	if err != nil {
		t.Fatalf("sign with other secret: %v", err)
	}

	for name, value := range map[string]string{
		"bare token":       token,
		"forged signature": token + "." + "AAAA",
		"foreign secret":   token + "." + foreignSignature,
	} {
		r := httptest.NewRequest(http.MethodGet, "/club", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: value})
		if SessionFromRequest(r) != nil {
			t.Errorf("%s: tampered cookie must not resolve a session", name)
		}
	}
}

func TestCreateSessionRequiresSecret(t *testing.T) {
	resetSessions()
	appConfig.App.SecretKey = ""

	err := CreateSession(httptest.NewRecorder(), Session{MemberID: 7})
	if err == nil {
		t.Fatal("expected an error without a configured secret")
	}
}

func TestSessionMissingCookie(t *testing.T) {
	resetSessions()

	r := httptest.NewRequest(http.MethodGet, "/club", nil)
	if SessionFromRequest(r) != nil {
		t.Fatal("expected no session without a cookie")
	}
}

func TestCreateSessionReplacesExisting(t *testing.T) {
	resetSessions()

	first := httptest.NewRecorder()
	if err := CreateSession(first, Session{MemberID: 7, Username: "admin"}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	second := httptest.NewRecorder()
	if err := CreateSession(second, Session{MemberID: 7, Username: "admin"}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if SessionFromRequest(requestWithCookies(t, first)) != nil {
		t.Fatal("first session should be replaced")
	}
	if SessionFromRequest(requestWithCookies(t, second)) == nil {
		t.Fatal("second session should be live")
	}
}

func TestClearSession(t *testing.T) {
	resetSessions()

	recorder := httptest.NewRecorder()
	if err := CreateSession(recorder, Session{MemberID: 7, Username: "admin"}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	r := requestWithCookies(t, recorder)
	ClearSession(httptest.NewRecorder(), r)

	if SessionFromRequest(r) != nil {
		t.Fatal("session should be gone after clear")
	}
}

func TestPruneExpiredSessions(t *testing.T) {
	resetSessions()

	sessionMu.Lock()
	sessionStore["stale"] = sessionRecord{
		Session:   Session{MemberID: 1},
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessionStore["live"] = sessionRecord{
		Session:   Session{MemberID: 2},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessionMu.Unlock()

	PruneExpiredSessions()

	sessionMu.RLock()
	defer sessionMu.RUnlock()
	if _, ok := sessionStore["stale"]; ok {
		t.Fatal("expired session should be pruned")
	}
	if _, ok := sessionStore["live"]; !ok {
		t.Fatal("live session should survive pruning")
	}
}
