package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	appdb "github.com/eastfallsrec/matchbook/internal/db"
	"github.com/eastfallsrec/matchbook/internal/models"
)

// SQLite implements Store over the application database.
type SQLite struct {
	db *appdb.DB
}

func NewSQLite(database *appdb.DB) *SQLite {
	return &SQLite{db: database}
}

func (s *SQLite) CurrentSeason(ctx context.Context) (models.Season, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, end_date
		FROM seasons
		ORDER BY end_date DESC
		LIMIT 1`)

	var season models.Season
	err := row.Scan(&season.ID, &season.Name, &season.StartDate, &season.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Season{}, ErrNotFound
	}
	if err != nil {
		return models.Season{}, fmt.Errorf("query current season: %w", err)
	}
	return season, nil
}

func (s *SQLite) SeasonAssignments(ctx context.Context, seasonID int64) ([]models.TeamAssignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, team_id, season_id
		FROM team_assignments
		WHERE season_id = ?
		ORDER BY team_id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query season assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.TeamAssignment
	for rows.Next() {
		var a models.TeamAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TeamID, &a.SeasonID); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *SQLite) SeasonUsers(ctx context.Context, seasonID int64) ([]models.User, error) {
	assignments, err := s.SeasonAssignments(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.UserID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, username, email FROM users WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query season users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLite) SeasonTeams(ctx context.Context, seasonID int64) ([]models.Team, error) {
	assignments, err := s.SeasonAssignments(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(assignments))
	var ids []int64
	for _, a := range assignments {
		if _, ok := seen[a.TeamID]; ok {
			continue
		}
		seen[a.TeamID] = struct{}{}
		ids = append(ids, a.TeamID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, flag_key, color FROM teams WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query season teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Flag, &t.Color); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *SQLite) SeasonMatches(ctx context.Context, seasonID int64) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season_id, date, home_team_id, away_team_id, home_team_score, away_team_score
		FROM matches
		WHERE season_id = ?
		ORDER BY id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query season matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		var home, away sql.NullInt64
		if err := rows.Scan(&m.ID, &m.SeasonID, &m.Date, &m.HomeTeamID, &m.AwayTeamID, &home, &away); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if home.Valid {
			v := home.Int64
			m.HomeScore = &v
		}
		if away.Valid {
			v := away.Int64
			m.AwayScore = &v
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *SQLite) UpdateMatchScore(ctx context.Context, matchID int64, home, away *int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE matches SET home_team_score = ?, away_team_score = ?
		WHERE id = ?`, nullableInt64(home), nullableInt64(away), matchID)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	return nil
}

func (s *SQLite) ClearMatchScore(ctx context.Context, matchID int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE matches SET home_team_score = NULL, away_team_score = NULL
		WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("clear match score: %w", err)
	}
	return nil
}

func (s *SQLite) MemberByUsername(ctx context.Context, username string) (models.Member, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, password_hash, is_admin
		FROM members
		WHERE username = ?`, username)

	var member models.Member
	err := row.Scan(&member.ID, &member.Username, &member.DisplayName, &member.PasswordHash, &member.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("query member: %w", err)
	}
	return member, nil
}

func (s *SQLite) EnsureMember(ctx context.Context, member models.Member) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (username, display_name, password_hash, is_admin)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO NOTHING`,
		member.Username, member.DisplayName, member.PasswordHash, member.IsAdmin)
	if err != nil {
		return fmt.Errorf("ensure member: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
