// Package redis provides an alternate token repository backed by Redis, for
// deployments that want token records off the relational store. Accounts
// always stay in the sqlite driver; only store.Tokens is implemented here.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/redis/go-redis/v9"
)

type Tokens struct {
	rdb    *redis.Client
	prefix string
}

// NewTokens returns a store.Tokens over the given client. prefix namespaces
// every key, e.g. "helios".
func NewTokens(rdb *redis.Client, prefix string) *Tokens {
	if prefix == "" {
		prefix = "helios"
	}
	return &Tokens{rdb: rdb, prefix: prefix}
}

func (t *Tokens) valueKey(value string) string {
	return fmt.Sprintf("%s:token:val:%s", t.prefix, value)
}

func (t *Tokens) accountKey(typ domain.TokenType, accountID string) string {
	return fmt.Sprintf("%s:token:acct:%s:%s", t.prefix, typ, accountID)
}

// exchangeSetKey indexes opaque exchange codes by creation time so the
// housekeeping sweep can expire them without scanning the keyspace.
func (t *Tokens) exchangeSetKey() string {
	return fmt.Sprintf("%s:token:exchange", t.prefix)
}

func (t *Tokens) CreateToken(ctx context.Context, tok domain.Token) error {
	if tok.CreatedAt.IsZero() {
		tok.CreatedAt = time.Now().UTC()
	}

	blob, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("redis tokens: marshal: %w", err)
	}

	pipe := t.rdb.TxPipeline()
	pipe.Set(ctx, t.valueKey(tok.Token), blob, 0)
	pipe.Set(ctx, t.accountKey(tok.Type, tok.AccountID), tok.Token, 0)
	if tok.Type == domain.TokenTypeExchangeCode {
		pipe.ZAdd(ctx, t.exchangeSetKey(), redis.Z{
			Score:  float64(tok.CreatedAt.Unix()),
			Member: tok.Token,
		})
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (t *Tokens) GetTokenByValue(ctx context.Context, value string) (domain.Token, error) {
	blob, err := t.rdb.Get(ctx, t.valueKey(value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Token{}, store.ErrNotFound
		}
		return domain.Token{}, err
	}

	var tok domain.Token
	if err := json.Unmarshal(blob, &tok); err != nil {
		return domain.Token{}, fmt.Errorf("redis tokens: unmarshal: %w", err)
	}
	return tok, nil
}

func (t *Tokens) GetTokenByTypeAndAccount(
	ctx context.Context,
	typ domain.TokenType,
	accountID string,
) (domain.Token, error) {
	value, err := t.rdb.Get(ctx, t.accountKey(typ, accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Token{}, store.ErrNotFound
		}
		return domain.Token{}, err
	}
	return t.GetTokenByValue(ctx, value)
}

func (t *Tokens) DeleteTokensByTypeAndAccount(
	ctx context.Context,
	typ domain.TokenType,
	accountID string,
) error {
	value, err := t.rdb.Get(ctx, t.accountKey(typ, accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // nothing to rotate out
		}
		return err
	}

	pipe := t.rdb.TxPipeline()
	pipe.Del(ctx, t.valueKey(value))
	pipe.Del(ctx, t.accountKey(typ, accountID))
	if typ == domain.TokenTypeExchangeCode {
		pipe.ZRem(ctx, t.exchangeSetKey(), value)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (t *Tokens) DeleteExpiredExchangeCodes(ctx context.Context, cutoff time.Time) error {
	maxScore := fmt.Sprintf("%d", cutoff.Unix())
	values, err := t.rdb.ZRangeByScore(ctx, t.exchangeSetKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + maxScore,
	}).Result()
	if err != nil {
		return err
	}

	for _, value := range values {
		tok, err := t.GetTokenByValue(ctx, value)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// The account index holds one value per (type, account) and a newer
		// code may have overwritten it. Only drop the index when it still
		// points at the code being swept, or the live code would lose its
		// lookup entry.
		dropIndex := false
		if err == nil {
			current, err := t.rdb.Get(ctx, t.accountKey(tok.Type, tok.AccountID)).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			dropIndex = err == nil && current == value
		}

		pipe := t.rdb.TxPipeline()
		pipe.Del(ctx, t.valueKey(value))
		if dropIndex {
			pipe.Del(ctx, t.accountKey(tok.Type, tok.AccountID))
		}
		pipe.ZRem(ctx, t.exchangeSetKey(), value)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
