// internal/api/auth/handlers.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/eastfallsrec/matchbook/internal/config"
	"github.com/eastfallsrec/matchbook/internal/ratelimit"
	"github.com/eastfallsrec/matchbook/internal/store"
	"github.com/eastfallsrec/matchbook/internal/templates/layouts"
)

var (
	appConfig    *config.Config
	dataStore    store.Store
	limiter      *rate.Limiter
	loginLimiter *ratelimit.Limiter
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(cfg *config.Config, st store.Store) {
	appConfig = cfg
	dataStore = st
	limiter = rate.NewLimiter(rate.Limit(5), 10) // Restrictive for auth
	if loginLimiter != nil {
		loginLimiter.Close()
	}
	loginLimiter = ratelimit.New(nil)
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	// Logged-in members have no business on the login page.
	if SessionFromRequest(r) != nil {
		http.Redirect(w, r, "/club", http.StatusSeeOther)
		return
	}

	renderLogin(w, r, "")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Auth store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !limiter.Allow() {
		http.Error(w, "Too many login attempts", http.StatusTooManyRequests)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderLogin(w, r, "Username and password are required.")
		return
	}

	clientIP := ratelimit.GetClientIP(r, false)
	if result := loginLimiter.CheckLogin(username, clientIP); !result.Allowed {
		ratelimit.LogRateLimitExceeded(username, clientIP, result.Reason)
		renderLogin(w, r, "Too many failed attempts. Try again later.")
		return
	}

	member, err := dataStore.MemberByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error().Err(err).Msg("Failed to look up member")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if errors.Is(err, store.ErrNotFound) || !VerifyPassword(member.PasswordHash, password) {
		if loginLimiter.RecordFailure(username, clientIP) {
			logger.Warn().Str("username", username).Msg("Login lockout triggered")
		}
		logger.Warn().Str("username", username).Msg("Login rejected")
		renderLogin(w, r, "Invalid username or password.")
		return
	}

	loginLimiter.ResetFailures(username)

	session := Session{
		MemberID:    member.ID,
		Username:    member.Username,
		DisplayName: member.DisplayName,
		IsAdmin:     member.IsAdmin,
	}
	if err := CreateSession(w, session); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("username", member.Username).Msg("Member logged in")
	http.Redirect(w, r, "/club", http.StatusSeeOther)
}

// POST /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func renderLogin(w http.ResponseWriter, r *http.Request, errorMessage string) {
	component := layouts.Page("Sign In", loginFormComponent(errorMessage))
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render login page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func loginFormComponent(errorMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="mx-auto mt-16 max-w-sm rounded border bg-white p-6 shadow-sm">`)
		builder.WriteString(`<h1 class="text-xl font-semibold text-gray-900">Club Sign In</h1>`)
		if errorMessage != "" {
			builder.WriteString(fmt.Sprintf(`<div class="mt-3 rounded bg-red-50 p-2 text-sm text-red-700">%s</div>`, html.EscapeString(errorMessage)))
		}
		builder.WriteString(`<form method="post" action="/login" class="mt-4 space-y-4">`)
		builder.WriteString(`<label class="block text-sm text-gray-700">Username<input type="text" name="username" class="mt-1 w-full rounded border p-2" autocomplete="username"/></label>`)
		builder.WriteString(`<label class="block text-sm text-gray-700">Password<input type="password" name="password" class="mt-1 w-full rounded border p-2" autocomplete="current-password"/></label>`)
		builder.WriteString(`<button type="submit" class="w-full rounded bg-blue-600 p-2 text-white">Sign in</button>`)
		builder.WriteString(`</form></div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}
