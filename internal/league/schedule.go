package league

import (
	"sort"
	"strconv"

	"github.com/eastfallsrec/matchbook/internal/models"
)

// Highlight marks how a team's column renders on the schedule table.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightWin
	HighlightTie
)

// CSS returns the color applied to a highlighted column.
func (h Highlight) CSS() string {
	switch h {
	case HighlightWin:
		return "blue"
	case HighlightTie:
		return "purple"
	default:
		return "inherit"
	}
}

// Placeholder shown in score cells while a match is pending.
const scorePending = "TBD"

// Venue labels derive from match id parity. The club alternates the two
// fields by match number; there is no venue column in the store.
const (
	venueEven = "Back"
	venueOdd  = "Front"
)

// MatchRow is one rendered schedule row.
type MatchRow struct {
	Match         models.Match
	HomeTeamName  string
	AwayTeamName  string
	HomeHighlight Highlight
	AwayHighlight Highlight
	HomeScoreText string
	AwayScoreText string
	Venue         string
}

// PresentSchedule sorts matches ascending by date (stable, so same-date
// matches keep input order) and derives the display attributes for each.
// Team names render empty when the team is not in teams.
func PresentSchedule(matches []models.Match, teams []models.Team) []MatchRow {
	teamsByID := make(map[int64]models.Team, len(teams))
	for _, team := range teams {
		teamsByID[team.ID] = team
	}

	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	rows := make([]MatchRow, len(sorted))
	for i, match := range sorted {
		row := MatchRow{
			Match:         match,
			HomeTeamName:  teamsByID[match.HomeTeamID].Name,
			AwayTeamName:  teamsByID[match.AwayTeamID].Name,
			HomeScoreText: scorePending,
			AwayScoreText: scorePending,
			Venue:         venueOdd,
		}
		if match.ID%2 == 0 {
			row.Venue = venueEven
		}
		if match.HomeScore != nil {
			row.HomeScoreText = strconv.FormatInt(*match.HomeScore, 10)
		}
		if match.AwayScore != nil {
			row.AwayScoreText = strconv.FormatInt(*match.AwayScore, 10)
		}
		if match.Complete() {
			switch {
			case *match.HomeScore > *match.AwayScore:
				row.HomeHighlight = HighlightWin
			case *match.AwayScore > *match.HomeScore:
				row.AwayHighlight = HighlightWin
			default:
				row.HomeHighlight = HighlightTie
				row.AwayHighlight = HighlightTie
			}
		}
		rows[i] = row
	}
	return rows
}
