package sqlite

import (
	"context"

	"github.com/driftpeak/helios/internal/auth/domain"
)

const accountColumns = `id, email, password_hash, display_name, device_id, banned, created_at, updated_at`

type accountsRepo struct {
	db querier
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByDeviceID(ctx context.Context, deviceID string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE device_id = ? LIMIT 1`, deviceID)
	return scanAccount(row)
}

func (r *accountsRepo) UpdateDeviceID(ctx context.Context, accountID, deviceID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET device_id = ?, updated_at = ? WHERE id = ?`,
		deviceID, nowUTC(), accountID)
	return err
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, password_hash, display_name, device_id, banned, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.DisplayName,
		mapOptionalString(a.DeviceID), boolToInt(a.Banned), now, now)
	return err
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
