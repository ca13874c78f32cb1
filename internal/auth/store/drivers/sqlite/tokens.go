package sqlite

import (
	"context"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
)

const tokenColumns = `id, type, account_id, token, client_id, grant_type, created_at`

type tokensRepo struct {
	db querier
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = nowUTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (id, type, account_id, token, client_id, grant_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.AccountID, t.Token, t.ClientID, string(t.Grant), created)
	return err
}

func (r *tokensRepo) GetTokenByValue(ctx context.Context, value string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE token = ?`, value)
	return scanToken(row)
}

func (r *tokensRepo) GetTokenByTypeAndAccount(
	ctx context.Context,
	typ domain.TokenType,
	accountID string,
) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE type = ? AND account_id = ? LIMIT 1`,
		string(typ), accountID)
	return scanToken(row)
}

func (r *tokensRepo) DeleteTokensByTypeAndAccount(
	ctx context.Context,
	typ domain.TokenType,
	accountID string,
) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE type = ? AND account_id = ?`,
		string(typ), accountID)
	return err
}

func (r *tokensRepo) DeleteExpiredExchangeCodes(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE type = ? AND created_at < ?`,
		string(domain.TokenTypeExchangeCode), cutoff)
	return err
}
