package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eastfallsrec/matchbook/internal/league"
	"github.com/eastfallsrec/matchbook/internal/models"
)

// Sample serves a fixed dataset so every page renders without a database.
// Reads always succeed; writes are logged and dropped.
type Sample struct {
	seasons     []models.Season
	users       []models.User
	teams       []models.Team
	assignments []models.TeamAssignment
	matches     []models.Match
	members     map[string]models.Member
}

func midnight(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewSample builds the fixed dataset: the inaugural 2024 season plus the
// finished 2023 pilot, four teams, five assigned users, and a six-match
// round-robin schedule with no scores entered.
func NewSample() *Sample {
	return &Sample{
		seasons: []models.Season{
			{ID: 2, Name: "2023-W0-pilot", StartDate: midnight(2022, time.November, 1), EndDate: midnight(2023, time.January, 1)},
			{ID: 1, Name: "2024-W1-inaugural", StartDate: midnight(2024, time.January, 11), EndDate: midnight(2024, time.February, 15)},
		},
		users: []models.User{
			{ID: 1, Name: "Person 1", Username: "peep1", Email: "fake@email.com"},
			{ID: 2, Name: "Person 2", Username: "peep2", Email: "fake@email2.com"},
			{ID: 3, Name: "Person 3", Username: "peep3", Email: "fake@email3.com"},
			{ID: 4, Name: "Person 4", Username: "peep4", Email: "fake@email4.com"},
			{ID: 5, Name: "Person 5", Username: "peep5", Email: "fake@email5.com"},
		},
		teams: []models.Team{
			{ID: 1, Name: "Ridge Avenue Potholes", Flag: models.FlagBolt, Color: models.ColorBlue},
			{ID: 2, Name: "Mcdevitt's Divets", Flag: models.FlagTriangle, Color: models.ColorOrange},
			{ID: 3, Name: "East Falls United", Flag: models.FlagAlt, Color: models.ColorSilver},
			{ID: 4, Name: "East Falls FC", Flag: models.FlagFire, Color: models.ColorGreen},
		},
		assignments: []models.TeamAssignment{
			{ID: 1, UserID: 1, TeamID: 1, SeasonID: 1},
			{ID: 2, UserID: 2, TeamID: 1, SeasonID: 1},
			{ID: 3, UserID: 3, TeamID: 2, SeasonID: 1},
			{ID: 4, UserID: 4, TeamID: 2, SeasonID: 1},
			{ID: 5, UserID: 5, TeamID: 3, SeasonID: 1},
		},
		matches: []models.Match{
			{ID: 1, SeasonID: 1, Date: midnight(2024, time.January, 11), HomeTeamID: 1, AwayTeamID: 2},
			{ID: 2, SeasonID: 1, Date: midnight(2024, time.January, 11), HomeTeamID: 3, AwayTeamID: 4},
			{ID: 3, SeasonID: 1, Date: midnight(2024, time.January, 18), HomeTeamID: 1, AwayTeamID: 3},
			{ID: 4, SeasonID: 1, Date: midnight(2024, time.January, 18), HomeTeamID: 2, AwayTeamID: 4},
			{ID: 5, SeasonID: 1, Date: midnight(2024, time.January, 25), HomeTeamID: 1, AwayTeamID: 4},
			{ID: 6, SeasonID: 1, Date: midnight(2024, time.January, 25), HomeTeamID: 2, AwayTeamID: 3},
		},
		members: make(map[string]models.Member),
	}
}

func (s *Sample) CurrentSeason(ctx context.Context) (models.Season, error) {
	season, ok := league.CurrentSeason(s.seasons)
	if !ok {
		return models.Season{}, ErrNotFound
	}
	return season, nil
}

func (s *Sample) SeasonAssignments(ctx context.Context, seasonID int64) ([]models.TeamAssignment, error) {
	var assignments []models.TeamAssignment
	for _, a := range s.assignments {
		if a.SeasonID == seasonID {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *Sample) SeasonUsers(ctx context.Context, seasonID int64) ([]models.User, error) {
	assignments, _ := s.SeasonAssignments(ctx, seasonID)
	assigned := make(map[int64]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.UserID] = struct{}{}
	}
	var users []models.User
	for _, u := range s.users {
		if _, ok := assigned[u.ID]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Sample) SeasonTeams(ctx context.Context, seasonID int64) ([]models.Team, error) {
	assignments, _ := s.SeasonAssignments(ctx, seasonID)
	assigned := make(map[int64]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.TeamID] = struct{}{}
	}
	var teams []models.Team
	for _, t := range s.teams {
		if _, ok := assigned[t.ID]; ok {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (s *Sample) SeasonMatches(ctx context.Context, seasonID int64) ([]models.Match, error) {
	var matches []models.Match
	for _, m := range s.matches {
		if m.SeasonID == seasonID {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (s *Sample) UpdateMatchScore(ctx context.Context, matchID int64, home, away *int64) error {
	log.Ctx(ctx).Debug().Int64("match_id", matchID).Msg("Not altering data in sample mode")
	return nil
}

func (s *Sample) ClearMatchScore(ctx context.Context, matchID int64) error {
	log.Ctx(ctx).Debug().Int64("match_id", matchID).Msg("Not altering data in sample mode")
	return nil
}

func (s *Sample) MemberByUsername(ctx context.Context, username string) (models.Member, error) {
	member, ok := s.members[username]
	if !ok {
		return models.Member{}, ErrNotFound
	}
	return member, nil
}

// EnsureMember keeps login accounts in memory so the gated section still
// works in sample mode.
func (s *Sample) EnsureMember(ctx context.Context, member models.Member) error {
	if _, ok := s.members[member.Username]; ok {
		return nil
	}
	member.ID = int64(len(s.members) + 1)
	s.members[member.Username] = member
	return nil
}
