package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	sessionCookieName = "matchbook_session"
	sessionTTL        = 8 * time.Hour
	sessionTokenBytes = 32
)

var errSecretKeyMissing = errors.New("APP_SECRET_KEY is not configured")

// Session is the logged-in member attached to a request.
type Session struct {
	MemberID    int64
	Username    string
	DisplayName string
	IsAdmin     bool
}

type sessionRecord struct {
	Session
	ExpiresAt time.Time
}

var (
	sessionMu sync.RWMutex
	// In-memory sessions are intentionally ephemeral; a restart logs
	// everyone out.
	sessionStore = make(map[string]sessionRecord)
)

// CreateSession issues a session token for the member and sets the cookie.
// Any existing sessions for the same member are replaced.
func CreateSession(w http.ResponseWriter, session Session) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	token, err := newSessionToken()
	if err != nil {
		return err
	}
	signature, err := signToken(token)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	sessionMu.Lock()
	for existing, record := range sessionStore {
		if record.MemberID == session.MemberID {
			delete(sessionStore, existing)
		}
	}
	sessionStore[token] = sessionRecord{Session: session, ExpiresAt: expiresAt}
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token + "." + signature,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return nil
}

// ClearSession removes the request's session, if any, and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if token, ok := verifyCookieValue(cookie.Value); ok {
				deleteSession(token)
			}
		}
	}

	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// SessionFromRequest resolves the request's session cookie. A missing or
// expired session returns nil with no error.
func SessionFromRequest(r *http.Request) *Session {
	if r == nil {
		return nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	token, ok := verifyCookieValue(cookie.Value)
	if !ok {
		return nil
	}

	sessionMu.RLock()
	record, ok := sessionStore[token]
	sessionMu.RUnlock()
	if !ok {
		return nil
	}
	if record.ExpiresAt.Before(time.Now()) {
		deleteSession(token)
		return nil
	}

	session := record.Session
	return &session
}

// PruneExpiredSessions drops expired session records. Registered as a
// recurring scheduler job at startup.
func PruneExpiredSessions() {
	now := time.Now()
	sessionMu.Lock()
	for token, record := range sessionStore {
		if record.ExpiresAt.Before(now) {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}

// signToken authenticates the session token with HMAC-SHA256 under the app
// secret, so a forged or edited cookie never reaches the session store.
func signToken(token string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errSecretKeyMissing
	}

	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	_, _ = mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// verifyCookieValue splits a `token.signature` cookie and checks the
// signature, returning the bare token on success.
func verifyCookieValue(value string) (string, bool) {
	token, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	expected, err := signToken(token)
	if err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return token, true
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(token), nil
}

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}
