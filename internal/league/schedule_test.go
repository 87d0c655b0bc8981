package league

import (
	"testing"
	"time"

	"github.com/eastfallsrec/matchbook/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestPresentScheduleSortsByDateStable(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	matches := []models.Match{
		{ID: 3, Date: day(18), HomeTeamID: 1, AwayTeamID: 2},
		{ID: 1, Date: day(11), HomeTeamID: 1, AwayTeamID: 2},
		{ID: 2, Date: day(11), HomeTeamID: 2, AwayTeamID: 1},
	}

	rows := PresentSchedule(matches, teams)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Same-date matches keep input order: 1 before 2.
	wantIDs := []int64{1, 2, 3}
	for i, row := range rows {
		if row.Match.ID != wantIDs[i] {
			t.Fatalf("row %d: got match %d, want %d", i, row.Match.ID, wantIDs[i])
		}
	}
}

func TestPresentScheduleHighlights(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	cases := []struct {
		name     string
		home     *int64
		away     *int64
		wantHome Highlight
		wantAway Highlight
	}{
		{"home win", score(3), score(1), HighlightWin, HighlightNone},
		{"away win", score(0), score(2), HighlightNone, HighlightWin},
		{"tie", score(1), score(1), HighlightTie, HighlightTie},
		{"pending", nil, score(2), HighlightNone, HighlightNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := []models.Match{
				{ID: 1, Date: day(11), HomeTeamID: 1, AwayTeamID: 2, HomeScore: tc.home, AwayScore: tc.away},
			}
			rows := PresentSchedule(matches, teams)
			if rows[0].HomeHighlight != tc.wantHome || rows[0].AwayHighlight != tc.wantAway {
				t.Fatalf("got (%v, %v), want (%v, %v)",
					rows[0].HomeHighlight, rows[0].AwayHighlight, tc.wantHome, tc.wantAway)
			}
		})
	}
}

func TestPresentSchedulePendingScoreText(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	matches := []models.Match{
		{ID: 1, Date: day(11), HomeTeamID: 1, AwayTeamID: 2, HomeScore: score(4)},
	}

	rows := PresentSchedule(matches, teams)
	if rows[0].HomeScoreText != "4" {
		t.Fatalf("expected home score text 4, got %q", rows[0].HomeScoreText)
	}
	if rows[0].AwayScoreText != "TBD" {
		t.Fatalf("expected away score text TBD, got %q", rows[0].AwayScoreText)
	}
}

func TestPresentScheduleVenueParity(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	matches := []models.Match{
		{ID: 1, Date: day(11), HomeTeamID: 1, AwayTeamID: 2},
		{ID: 2, Date: day(12), HomeTeamID: 2, AwayTeamID: 1},
	}

	rows := PresentSchedule(matches, teams)
	if rows[0].Venue != "Front" {
		t.Fatalf("odd match id renders Front, got %q", rows[0].Venue)
	}
	if rows[1].Venue != "Back" {
		t.Fatalf("even match id renders Back, got %q", rows[1].Venue)
	}
}

func TestPresentScheduleMissingTeamRendersBlank(t *testing.T) {
	teams := []models.Team{{ID: 1, Name: "A"}}
	matches := []models.Match{
		{ID: 1, Date: day(11), HomeTeamID: 1, AwayTeamID: 42},
	}

	rows := PresentSchedule(matches, teams)
	if rows[0].HomeTeamName != "A" {
		t.Fatalf("expected home team A, got %q", rows[0].HomeTeamName)
	}
	if rows[0].AwayTeamName != "" {
		t.Fatalf("missing team must render empty, got %q", rows[0].AwayTeamName)
	}
}
