package store

import (
	"context"
	"errors"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories keep concerns tidy and testable, and make it possible to
// swap the token repository for a different backend (see drivers/redis).
type Store interface {
	Accounts() Accounts
	Tokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	//
	// Note: the token-rotation path does NOT use this; its delete-then-create
	// sequence runs untransacted and races resolve last-write-wins.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID resolves token subjects and exchange-code owners.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during the password grant.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByDeviceID finds the account currently bound to a hardware
	// id, if any.
	GetAccountByDeviceID(ctx context.Context, deviceID string) (domain.Account, error)

	// UpdateDeviceID rewrites the bound hardware id and bumps updated_at.
	UpdateDeviceID(ctx context.Context, accountID, deviceID string) error

	// CreateAccount inserts a new account (id provided by the app via ULID).
	// Account provisioning proper lives elsewhere; this exists for bootstrap
	// seeding and tests.
	CreateAccount(ctx context.Context, a domain.Account) error

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}

type Tokens interface {
	// CreateToken stores a new token record.
	CreateToken(ctx context.Context, t domain.Token) error

	// GetTokenByValue returns the record holding the given opaque value.
	GetTokenByValue(ctx context.Context, value string) (domain.Token, error)

	// GetTokenByTypeAndAccount returns an account's live record of a type.
	GetTokenByTypeAndAccount(ctx context.Context, typ domain.TokenType, accountID string) (domain.Token, error)

	// DeleteTokensByTypeAndAccount removes an account's records of a type.
	// Callers run this before CreateToken to rotate rather than accumulate.
	DeleteTokensByTypeAndAccount(ctx context.Context, typ domain.TokenType, accountID string) error

	// DeleteExpiredExchangeCodes removes opaque exchange codes created
	// before the cutoff. Housekeeping only.
	DeleteExpiredExchangeCodes(ctx context.Context, cutoff time.Time) error
}
