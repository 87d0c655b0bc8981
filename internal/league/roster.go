package league

import (
	"sort"

	"github.com/eastfallsrec/matchbook/internal/models"
)

// RosterEntry is one row of the grouped roster view: a user together with
// the team their assignment resolved to.
type RosterEntry struct {
	User models.User
	Team models.Team
}

// GroupUsersByTeam clusters assigned users by team for the roster page.
//
// Assignments whose user or team cannot be resolved are dropped. Users in a
// team are ordered by name; the teams themselves are ordered by the name of
// each team's first (already sorted) user, not by team name. Teams with no
// resolved users and users with no assignment never appear.
func GroupUsersByTeam(users []models.User, assignments []models.TeamAssignment, teams []models.Team) []RosterEntry {
	usersByID := make(map[int64]models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}
	teamsByID := make(map[int64]models.Team, len(teams))
	for _, team := range teams {
		teamsByID[team.ID] = team
	}

	buckets := make(map[int64][]models.User)
	for _, assignment := range assignments {
		user, ok := usersByID[assignment.UserID]
		if !ok {
			continue
		}
		if _, ok := teamsByID[assignment.TeamID]; !ok {
			continue
		}
		buckets[assignment.TeamID] = append(buckets[assignment.TeamID], user)
	}

	teamIDs := make([]int64, 0, len(buckets))
	for teamID, members := range buckets {
		sort.Slice(members, func(i, j int) bool {
			return members[i].Name < members[j].Name
		})
		teamIDs = append(teamIDs, teamID)
	}

	// Team order follows from the leading user of each bucket; team id breaks
	// ties so the output is deterministic.
	sort.Slice(teamIDs, func(i, j int) bool {
		first := buckets[teamIDs[i]][0].Name
		second := buckets[teamIDs[j]][0].Name
		if first != second {
			return first < second
		}
		return teamIDs[i] < teamIDs[j]
	})

	var entries []RosterEntry
	for _, teamID := range teamIDs {
		team := teamsByID[teamID]
		for _, user := range buckets[teamID] {
			entries = append(entries, RosterEntry{User: user, Team: team})
		}
	}
	return entries
}
