package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"i18nextract/internal/translations"
)

// ErrNoDatabaseURL is returned when the postgres adapter has no DSN.
var ErrNoDatabaseURL = errors.New("postgres adapter requires databaseUrl")

const createTranslationsTable = `
CREATE TABLE IF NOT EXISTS translations (
	lang       TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (lang, key)
)`

// An existing non-empty value is never overwritten.
const upsertTranslation = `
INSERT INTO translations (lang, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (lang, key) DO UPDATE
SET value = EXCLUDED.value, updated_at = now()
WHERE translations.value = ''`

const deleteObsolete = `
DELETE FROM translations
WHERE lang = $1 AND NOT (key = ANY($2))`

// Execer is the subset of *pgxpool.Pool the adapter needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresAdapter upserts translations into a PostgreSQL table.
type PostgresAdapter struct {
	params Params
	db     Execer
}

// NewPostgresAdapter creates an adapter writing through db instead of
// opening its own pool.
func NewPostgresAdapter(db Execer) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

// Init checks that a DSN is available when no connection was injected.
func (a *PostgresAdapter) Init(p Params) error {
	if a.db == nil && p.DatabaseURL == "" {
		return ErrNoDatabaseURL
	}
	a.params = p
	return nil
}

// Persist writes every language. Without safe mode, keys that are no
// longer extracted are removed.
func (a *PostgresAdapter) Persist(ctx context.Context, set *translations.Set) error {
	db := a.db
	if db == nil {
		pool, err := pgxpool.New(ctx, a.params.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect PostgreSQL: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping PostgreSQL: %w", err)
		}
		log.Info().Msg("Connected to PostgreSQL")
		db = pool
	}

	if _, err := db.Exec(ctx, createTranslationsTable); err != nil {
		return fmt.Errorf("create translations table: %w", err)
	}

	keys := set.Keys()
	for _, lang := range a.params.Lang {
		checkTag(lang)
		res, _ := set.ForLanguage(nil, lang == a.params.DefaultLang)

		written := 0
		for _, e := range res.Values.Entries() {
			tag, err := db.Exec(ctx, upsertTranslation, lang, e.Key, e.Value)
			if err != nil {
				return fmt.Errorf("upsert %s/%s: %w", lang, e.Key, err)
			}
			written += int(tag.RowsAffected())
		}

		deleted := int64(0)
		if !set.Params().SafeMode {
			tag, err := db.Exec(ctx, deleteObsolete, lang, keys)
			if err != nil {
				return fmt.Errorf("delete obsolete %s: %w", lang, err)
			}
			deleted = tag.RowsAffected()
		}

		log.Info().
			Str("lang", lang).
			Int("keys", len(keys)).
			Int("written", written).
			Int64("deleted", deleted).
			Msg("Persisted translations to PostgreSQL")
	}
	return nil
}
