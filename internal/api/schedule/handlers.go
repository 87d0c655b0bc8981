// internal/api/schedule/handlers.go
package schedule

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/eastfallsrec/matchbook/internal/api/htmx"
	"github.com/eastfallsrec/matchbook/internal/league"
	"github.com/eastfallsrec/matchbook/internal/refresh"
	"github.com/eastfallsrec/matchbook/internal/store"
	"github.com/eastfallsrec/matchbook/internal/templates/layouts"
)

const scheduleQueryTimeout = 5 * time.Second
const scheduleDateLayout = "1/2/2006"

// ScheduleUpdatedEvent is the client-side event fired after a score write so
// the scoresheet re-fetches itself.
const ScheduleUpdatedEvent = "schedule-updated"

var (
	dataStore  store.Store
	refreshHub *refresh.Hub
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(st store.Store, hub *refresh.Hub) {
	dataStore = st
	refreshHub = hub
}

// GET /club/schedule
func HandleSchedulePage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	rows, ok := loadScheduleRows(w, r)
	if !ok {
		return
	}

	var component templ.Component
	if htmx.IsRequest(r) {
		// Partial refresh: just the table.
		component = scoresheetTableComponent(rows)
	} else {
		component = layouts.Page("Scoresheet", scoresheetPageComponent(rows))
	}
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render schedule page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// GET /club/events
//
// Server-sent event stream of refresh signals. The scoresheet page opens
// this and re-dispatches each event on the DOM, so scoresheets on other
// browsers refresh too, not just the one that posted the score.
func HandleEvents(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error().Msg("Response writer does not support streaming")
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	if refreshHub == nil {
		logger.Error().Msg("Refresh hub not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	events, cancel := refreshHub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case view := <-events:
			if view != refresh.ViewSchedule {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ScheduleUpdatedEvent, view)
			flusher.Flush()
		}
	}
}

// POST /api/v1/matches/{id}/score
func HandleSetScore(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	matchID, err := matchIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	home, err := parseOptionalScore(r.FormValue("home_score"))
	if err != nil {
		http.Error(w, "Invalid home score", http.StatusBadRequest)
		return
	}
	away, err := parseOptionalScore(r.FormValue("away_score"))
	if err != nil {
		http.Error(w, "Invalid away score", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	if err := dataStore.UpdateMatchScore(ctx, matchID, home, away); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to update match score")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match score updated")
	signalScheduleChanged(w)
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/matches/{id}/clear
func HandleClearScore(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	matchID, err := matchIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	if err := dataStore.ClearMatchScore(ctx, matchID); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to clear match score")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Match score cleared")
	signalScheduleChanged(w)
	w.WriteHeader(http.StatusNoContent)
}

// signalScheduleChanged tells both audiences the scoresheet is stale: the
// in-process hub for any backend subscriber, and the htmx trigger header for
// the page that issued the write.
func signalScheduleChanged(w http.ResponseWriter) {
	if refreshHub != nil {
		refreshHub.Publish(refresh.ViewSchedule)
	}
	htmx.SetTrigger(w, ScheduleUpdatedEvent)
}

func loadScheduleRows(w http.ResponseWriter, r *http.Request) ([]league.MatchRow, bool) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	season, err := dataStore.CurrentSeason(ctx)
	if errors.Is(err, store.ErrNotFound) {
		logger.Error().Msg("No current season in store")
		http.Error(w, "No current season", http.StatusInternalServerError)
		return nil, false
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load current season")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	matches, err := dataStore.SeasonMatches(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season matches")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	teams, err := dataStore.SeasonTeams(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	return league.PresentSchedule(matches, teams), true
}

func matchIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || matchID <= 0 {
		return 0, fmt.Errorf("invalid match id")
	}
	return matchID, nil
}

func parseOptionalScore(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid score value")
	}
	return &value, nil
}

func scoresheetPageComponent(rows []league.MatchRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-4">`)
		builder.WriteString(`<h1 class="text-2xl font-semibold text-gray-900">Current Season Schedule</h1>`)
		builder.WriteString(`<p class="text-sm text-gray-500">All Matches</p>`)
		builder.WriteString(buildScoresheetHTML(rows))
		builder.WriteString(`</div>`)
		builder.WriteString(refreshListenerHTML())
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

// refreshListenerHTML re-dispatches server-sent refresh events on the body,
// where the scoresheet's hx-trigger listens.
func refreshListenerHTML() string {
	return fmt.Sprintf(`<script>
if (window.EventSource) {
	new EventSource("/club/events").addEventListener("%s", function () {
		document.body.dispatchEvent(new Event("%s", { bubbles: true }));
	});
}
</script>`, ScheduleUpdatedEvent, ScheduleUpdatedEvent)
}

func scoresheetTableComponent(rows []league.MatchRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildScoresheetHTML(rows))
		return err
	})
}

func buildScoresheetHTML(rows []league.MatchRow) string {
	var builder strings.Builder
	// The wrapper re-fetches itself whenever a score write fires the
	// schedule-updated event.
	builder.WriteString(fmt.Sprintf(
		`<div id="scoresheet" class="mt-6 rounded border bg-white shadow-sm" hx-get="/club/schedule" hx-trigger="%s from:body" hx-swap="outerHTML">`,
		ScheduleUpdatedEvent,
	))
	builder.WriteString(`<table class="w-full text-left text-sm"><thead><tr class="border-b">`)
	builder.WriteString(`<th class="p-3">Home Team</th><th class="p-3">Away Team</th><th class="p-3">Home Score</th><th class="p-3">Away Score</th><th class="p-3">Date</th><th class="p-3">Field</th><th class="p-3">Enter Score</th><th class="p-3">Clear Score</th>`)
	builder.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		builder.WriteString(buildScoresheetRowHTML(row))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}

func buildScoresheetRowHTML(row league.MatchRow) string {
	match := row.Match

	homeValue := ""
	if match.HomeScore != nil {
		homeValue = strconv.FormatInt(*match.HomeScore, 10)
	}
	awayValue := ""
	if match.AwayScore != nil {
		awayValue = strconv.FormatInt(*match.AwayScore, 10)
	}

	return fmt.Sprintf(
		`<tr class="border-b" data-match-id="%d">
			<td class="p-3 whitespace-nowrap" style="color:%s">%s</td>
			<td class="p-3 whitespace-nowrap" style="color:%s">%s</td>
			<td class="p-3"><input form="match-form-%d" type="number" name="home_score" value="%s" placeholder="%s" class="w-20 rounded border p-1"/></td>
			<td class="p-3"><input form="match-form-%d" type="number" name="away_score" value="%s" placeholder="%s" class="w-20 rounded border p-1"/></td>
			<td class="p-3">%s</td>
			<td class="p-3">%s</td>
			<td class="p-3"><form id="match-form-%d" hx-post="/api/v1/matches/%d/score"><button type="submit" class="rounded bg-blue-600 px-3 py-1 text-white">Submit Game Scores</button></form></td>
			<td class="p-3"><form hx-post="/api/v1/matches/%d/clear"><button type="submit" class="rounded bg-red-600 px-3 py-1 text-white">Clear Game</button></form></td>
		</tr>`,
		match.ID,
		row.HomeHighlight.CSS(),
		html.EscapeString(row.HomeTeamName),
		row.AwayHighlight.CSS(),
		html.EscapeString(row.AwayTeamName),
		match.ID,
		homeValue,
		html.EscapeString(row.HomeScoreText),
		match.ID,
		awayValue,
		html.EscapeString(row.AwayScoreText),
		match.Date.Format(scheduleDateLayout),
		row.Venue,
		match.ID,
		match.ID,
		match.ID,
	)
}
