// Package league holds the pure aggregation and presentation logic computed
// per request from the season's users, teams, assignments, and matches.
package league

import (
	"github.com/eastfallsrec/matchbook/internal/models"
)

// CurrentSeason picks the season with the latest end date. The date is not
// compared against "now": a club between seasons still sees its most recent
// one. Returns false when seasons is empty. On equal end dates the earlier
// entry wins.
func CurrentSeason(seasons []models.Season) (models.Season, bool) {
	if len(seasons) == 0 {
		return models.Season{}, false
	}
	current := seasons[0]
	for _, season := range seasons[1:] {
		if season.EndDate.After(current.EndDate) {
			current = season
		}
	}
	return current, true
}
