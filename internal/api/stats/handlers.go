// internal/api/stats/handlers.go
package stats

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
	"github.com/eastfallsrec/matchbook/internal/store"
	"github.com/eastfallsrec/matchbook/internal/templates/layouts"
)

const statsQueryTimeout = 5 * time.Second

var dataStore store.Store

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(st store.Store) {
	dataStore = st
}

// GET /club/stats
func HandleStatsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if dataStore == nil {
		logger.Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), statsQueryTimeout)
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

	matches, err := dataStore.SeasonMatches(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season matches")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	teams, err := dataStore.SeasonTeams(ctx, season.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load season teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	teamStats := league.ComputeTeamStats(matches, teams)
	summaries := make([]league.StatSummary, 0, len(league.StatFields))
	for _, field := range league.StatFields {
		summaries = append(summaries, league.Summarize(teamStats, field))
	}

	component := layouts.Page("Stats", statsPageComponent(summaries))
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render stats page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func statsPageComponent(summaries []league.StatSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="grid gap-6 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, summary := range summaries {
			builder.WriteString(buildSummaryCardHTML(summary))
		}
		builder.WriteString(`</div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func buildSummaryCardHTML(summary league.StatSummary) string {
	label := summary.StatName.Label()

	var builder strings.Builder
	builder.WriteString(`<div class="rounded border bg-white p-4 shadow-sm">`)
	builder.WriteString(fmt.Sprintf(`<h2 class="text-lg font-semibold text-gray-900">%s</h2>`, html.EscapeString(label)))
	builder.WriteString(fmt.Sprintf(
		`<div class="mt-1 flex items-baseline gap-2"><span class="text-3xl font-semibold">%d</span><span class="text-sm text-gray-500">Total %s</span></div>`,
		summary.Total, html.EscapeString(label),
	))
	builder.WriteString(`<div class="mt-6 flex justify-between text-sm text-gray-500"><span>Club</span><span>` + html.EscapeString(label) + `</span></div>`)
	builder.WriteString(`<ul class="mt-2 space-y-1">`)

	max := 0
	if len(summary.Ranked) > 0 {
		max = summary.Ranked[0].Value
	}
	for _, stat := range summary.Ranked {
		width := 0
		if max > 0 {
			width = stat.Value * 100 / max
		}
		builder.WriteString(fmt.Sprintf(
			`<li class="relative rounded bg-blue-50 text-sm"><span class="absolute inset-y-0 left-0 rounded bg-blue-200" style="width:%d%%"></span><span class="relative flex justify-between px-2 py-1"><span>%s</span><span>%d</span></span></li>`,
			width, html.EscapeString(stat.Name), stat.Value,
		))
	}
	builder.WriteString(`</ul></div>`)
	return builder.String()
}
