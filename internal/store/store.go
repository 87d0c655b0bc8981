// Package store provides the data-access boundary for the club pages. Two
// implementations exist: SQLite over the real database, and Sample, which
// serves a fixed in-memory dataset for local development without a DB.
package store

import (
	"context"
	"errors"

	"github.com/eastfallsrec/matchbook/internal/models"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// Store is the set of reads and writes the club pages need. Reads are
// parameterized by season; the score update is the only write path.
type Store interface {
	// CurrentSeason returns the season with the latest end date, regardless
	// of whether it has already ended. ErrNotFound when no seasons exist.
	CurrentSeason(ctx context.Context) (models.Season, error)

	// SeasonAssignments returns the season's team assignments ordered by
	// team id.
	SeasonAssignments(ctx context.Context, seasonID int64) ([]models.TeamAssignment, error)

	// SeasonUsers returns the users referenced by the season's assignments.
	SeasonUsers(ctx context.Context, seasonID int64) ([]models.User, error)

	// SeasonTeams returns the teams referenced by the season's assignments.
	SeasonTeams(ctx context.Context, seasonID int64) ([]models.Team, error)

	// SeasonMatches returns the season's matches ordered by id.
	SeasonMatches(ctx context.Context, seasonID int64) ([]models.Match, error)

	// UpdateMatchScore writes both score fields of one match. Either side
	// may be nil. No validation, no concurrency check.
	UpdateMatchScore(ctx context.Context, matchID int64, home, away *int64) error

	// ClearMatchScore nulls both score fields of one match.
	ClearMatchScore(ctx context.Context, matchID int64) error

	// MemberByUsername looks up a login account for the gated section.
	MemberByUsername(ctx context.Context, username string) (models.Member, error)

	// EnsureMember creates the login account if it does not exist yet.
	// Used at startup to bootstrap the configured accounts.
	EnsureMember(ctx context.Context, member models.Member) error
}
