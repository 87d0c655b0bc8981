package league

import (
	"sort"

	"github.com/eastfallsrec/matchbook/internal/models"
)

// TeamStats is the per-team aggregate recomputed from the full match list on
// every request. It is never persisted.
type TeamStats struct {
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Ties         int    `json:"ties"`
}

// StatField selects one numeric column of TeamStats for summaries.
type StatField string

const (
	FieldWins         StatField = "wins"
	FieldLosses       StatField = "losses"
	FieldTies         StatField = "ties"
	FieldGoalsFor     StatField = "goalsFor"
	FieldGoalsAgainst StatField = "goalsAgainst"
)

// StatFields lists every summarizable field in display order.
var StatFields = []StatField{FieldWins, FieldLosses, FieldTies, FieldGoalsFor, FieldGoalsAgainst}

// Value returns the stat column selected by field, or zero for an unknown
// field.
func (s TeamStats) Value(field StatField) int {
	switch field {
	case FieldWins:
		return s.Wins
	case FieldLosses:
		return s.Losses
	case FieldTies:
		return s.Ties
	case FieldGoalsFor:
		return s.GoalsFor
	case FieldGoalsAgainst:
		return s.GoalsAgainst
	default:
		return 0
	}
}

// Label returns the heading text used on the stats page.
func (f StatField) Label() string {
	switch f {
	case FieldWins:
		return "Wins"
	case FieldLosses:
		return "Losses"
	case FieldTies:
		return "Ties"
	case FieldGoalsFor:
		return "Goals For"
	case FieldGoalsAgainst:
		return "Goals Against"
	default:
		return string(f)
	}
}

// ComputeTeamStats folds the season's matches into one TeamStats entry per
// input team, preserving the input team order.
//
// Goals are counted per side independently: a recorded score adds to the
// scorer's goals-for and the opponent's goals-against even when the other
// side's score is still missing. Win/loss/tie counters move only when both
// scores are recorded. A match referencing a team that is not in teams
// contributes nothing for that side.
func ComputeTeamStats(matches []models.Match, teams []models.Team) []TeamStats {
	stats := make([]TeamStats, len(teams))
	byTeam := make(map[int64]*TeamStats, len(teams))
	for i, team := range teams {
		stats[i] = TeamStats{TeamID: team.ID, TeamName: team.Name}
		byTeam[team.ID] = &stats[i]
	}

	for _, match := range matches {
		home := byTeam[match.HomeTeamID]
		away := byTeam[match.AwayTeamID]

		if match.HomeScore != nil {
			if home != nil {
				home.GoalsFor += int(*match.HomeScore)
			}
			if away != nil {
				away.GoalsAgainst += int(*match.HomeScore)
			}
		}
		if match.AwayScore != nil {
			if away != nil {
				away.GoalsFor += int(*match.AwayScore)
			}
			if home != nil {
				home.GoalsAgainst += int(*match.AwayScore)
			}
		}

		if !match.Complete() {
			continue
		}
		switch {
		case *match.HomeScore > *match.AwayScore:
			if home != nil {
				home.Wins++
			}
			if away != nil {
				away.Losses++
			}
		case *match.HomeScore < *match.AwayScore:
			if home != nil {
				home.Losses++
			}
			if away != nil {
				away.Wins++
			}
		default:
			if home != nil {
				home.Ties++
			}
			if away != nil {
				away.Ties++
			}
		}
	}

	return stats
}

// RankedStat is one row of a StatSummary bar list.
type RankedStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StatSummary totals one stat field across all teams and ranks the teams by
// it descending.
type StatSummary struct {
	StatName StatField    `json:"statName"`
	Total    int          `json:"total"`
	Ranked   []RankedStat `json:"stats"`
}

// Summarize builds the total and descending ranking for field. The sort is
// stable: teams with equal values keep their team-stats order.
func Summarize(teamStats []TeamStats, field StatField) StatSummary {
	total := 0
	ranked := make([]RankedStat, len(teamStats))
	for i, team := range teamStats {
		value := team.Value(field)
		total += value
		ranked[i] = RankedStat{Name: team.TeamName, Value: value}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	return StatSummary{StatName: field, Total: total, Ranked: ranked}
}
