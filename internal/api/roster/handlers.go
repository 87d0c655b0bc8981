// internal/api/roster/handlers.go
package roster

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/eastfallsrec/matchbook/internal/league"
	"github.com/eastfallsrec/matchbook/internal/models"
	"github.com/eastfallsrec/matchbook/internal/store"
	"github.com/eastfallsrec/matchbook/internal/templates/layouts"
)

const rosterQueryTimeout = 5 * time.Second
const rosterDateLayout = "1/2/2006"

var dataStore store.Store

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(st store.Store) {
	dataStore = st
}

// GET /club
func HandleRosterPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	season, err := dataStore.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		logger.Error().Msg("No current season in store")
		http.Error(w, "No current season", http.StatusInternalServerError)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load current season")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	users, err := dataStore.SeasonUsers(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season users")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	teams, err := dataStore.SeasonTeams(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	assignments, err := dataStore.SeasonAssignments(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season assignments")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entries := league.GroupUsersByTeam(users, assignments, teams)

	component := layouts.Page("Players", rosterPageComponent(season, entries))
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render roster page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func rosterPageComponent(season models.Season, entries []league.RosterEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-4">`)
		builder.WriteString(`<h1 class="text-2xl font-semibold text-gray-900">Players</h1>`)
		builder.WriteString(`<p class="text-sm text-gray-500">All players and team assignments.</p>`)
		builder.WriteString(fmt.Sprintf(
			`<div class="text-sm text-blue-600">Current Season: %s &middot; %s &ndash; %s</div>`,
			html.EscapeString(season.Name),
			season.StartDate.Format(rosterDateLayout),
			season.EndDate.Format(rosterDateLayout),
		))
		builder.WriteString(`<div class="mt-6 rounded border bg-white shadow-sm">`)
		builder.WriteString(buildRosterTableHTML(entries))
		builder.WriteString(`</div></div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func buildRosterTableHTML(entries []league.RosterEntry) string {
	if len(entries) == 0 {
		return `<div class="p-6 text-center text-sm text-gray-500">No players assigned this season.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="w-full text-left text-sm"><thead><tr class="border-b">`)
	builder.WriteString(`<th class="p-3">Name</th><th class="p-3">Team</th><th class="p-3">Team Flag</th>`)
	builder.WriteString(`</tr></thead><tbody>`)
	for _, entry := range entries {
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-b" data-user-id="%d"><td class="p-3">%s</td><td class="p-3 whitespace-nowrap" style="color:%s">%s</td><td class="p-3">%s</td></tr>`,
			entry.User.ID,
			html.EscapeString(entry.User.Name),
			entry.Team.Color.CSS(),
			html.EscapeString(entry.Team.Name),
			entry.Team.Flag.Glyph(),
		))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}
