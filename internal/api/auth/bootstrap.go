package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/eastfallsrec/matchbook/internal/models"
	"github.com/eastfallsrec/matchbook/internal/store"
)

// BootstrapMembers creates the login accounts configured through the
// environment, hashing passwords at startup so no hash ever sits in a
// migration. Existing accounts are left untouched.
//
//	DEFAULT_USERNAME / DEFAULT_PW  -> community account
//	ADMIN_USERNAME / ADMIN_PW      -> admin account
func BootstrapMembers(ctx context.Context, st store.Store) error {
	accounts := []struct {
		usernameVar string
		passwordVar string
		displayName string
		isAdmin     bool
	}{
		{"DEFAULT_USERNAME", "DEFAULT_PW", "Community User", false},
		{"ADMIN_USERNAME", "ADMIN_PW", "Admin User", true},
	}

	for _, account := range accounts {
		username := os.Getenv(account.usernameVar)
		password := os.Getenv(account.passwordVar)
		if username == "" || password == "" {
			log.Warn().Str("env", account.usernameVar).Msg("Login account not configured, skipping")
			continue
		}

		hash, err := HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", username, err)
		}

		member := models.Member{
			Username:     username,
			DisplayName:  account.displayName,
			PasswordHash: hash,
			IsAdmin:      account.isAdmin,
		}
		if err := st.EnsureMember(ctx, member); err != nil {
			return fmt.Errorf("bootstrap member %s: %w", username, err)
		}
	}

	return nil
}
