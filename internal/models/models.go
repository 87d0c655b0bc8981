// internal/models/models.go
package models

import "time"

// User is a club member as shown on roster pages. Identity is the ID;
// records are read-only once fetched for a view.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Team carries the symbolic flag and color keys resolved at render time.
type Team struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Flag  FlagKey  `json:"flagKey"`
	Color ColorKey `json:"color"`
}

type Season struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// TeamAssignment links a user to a team within a season. A user with no
// assignment row is a free agent.
type TeamAssignment struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"userId"`
	TeamID   int64 `json:"teamId"`
	SeasonID int64 `json:"seasonId"`
}

// Match scores are nil until entered. A match with both scores set is
// complete and counts toward standings.
type Match struct {
	ID         int64     `json:"id"`
	SeasonID   int64     `json:"seasonId"`
	Date       time.Time `json:"date"`
	HomeTeamID int64     `json:"homeTeamId"`
	AwayTeamID int64     `json:"awayTeamId"`
	HomeScore  *int64    `json:"homeTeamScore"`
	AwayScore  *int64    `json:"awayTeamScore"`
}

// Complete reports whether both scores have been recorded.
func (m Match) Complete() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Member is a login account for the gated club section, separate from the
// roster User records.
type Member struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
}
