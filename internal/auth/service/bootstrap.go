package service

import (
	"context"
	"log/slog"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/cryptox"
	"github.com/driftpeak/helios/pkg/idx"
	"github.com/driftpeak/helios/pkg/slogx"
)

// BootstrapService seeds a first account so a fresh deployment can log in.
// Account provisioning proper is owned by an external management tool; this
// only covers the empty-database case.
type BootstrapService struct {
	Store store.Store

	Email       string
	Password    string
	DisplayName string
}

// Seed creates the configured account if the accounts table is empty.
// Returns the new account id, or "" when seeding was skipped.
func (s *BootstrapService) Seed(ctx context.Context) (string, error) {
	l := slogx.FromContext(ctx)

	if s.Email == "" || s.Password == "" {
		l.Debug("bootstrap account not configured, skipping seed")
		return "", nil
	}

	hash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		return "", err
	}

	displayName := s.DisplayName
	if displayName == "" {
		displayName = s.Email
	}

	accountID := idx.New().String()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Accounts().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			accountID = ""
			return nil
		}

		return tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           accountID,
			Email:        s.Email,
			PasswordHash: hash,
			DisplayName:  displayName,
		})
	})
	if err != nil {
		return "", err
	}

	if accountID != "" {
		l.Info("seeded bootstrap account",
			slog.String("account_id", accountID),
			slog.String("email", s.Email),
		)
	}

	return accountID, nil
}
