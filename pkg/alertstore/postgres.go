package alertstore

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
	"github.com/dmitrymomot/alertkit/pkg/pg"
)

// Migrations holds the goose migrations creating the flash_alerts table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigratePostgres applies the embedded migrations.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log pg.Logger) error {
	return pg.MigrateFS(ctx, pool, Migrations, "migrations", cfg, log)
}

// PgxDB is the subset of *pgxpool.Pool used by the Postgres store.
type PgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres keeps one row per alert in the flash_alerts table.
// Rows are ordered by position within a scope.
type Postgres struct {
	db  PgxDB
	now func() time.Time
}

// NewPostgres creates a Postgres backed store. Run MigratePostgres first.
func NewPostgres(db PgxDB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

const (
	pgLoadQuery = `SELECT payload FROM flash_alerts WHERE scope = $1 ORDER BY position, created_at`

	pgAppendQuery = `INSERT INTO flash_alerts (scope, position, id, payload, created_at)
SELECT $1, COALESCE(MAX(position) + 1, 0), $2, $3, $4 FROM flash_alerts WHERE scope = $1
ON CONFLICT (scope, id) DO NOTHING`

	pgInsertQuery = `INSERT INTO flash_alerts (scope, position, id, payload, created_at) VALUES ($1, $2, $3, $4, $5)`

	pgClearQuery = `DELETE FROM flash_alerts WHERE scope = $1`
)

func (p *Postgres) Load(ctx context.Context, scope string) ([]alerts.Alert, error) {
	rows, err := p.db.Query(ctx, pgLoadQuery, scope)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	list := make([]alerts.Alert, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, unavailable(err)
		}
		var a alerts.Alert
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, fmt.Errorf("%w: %w", alerts.ErrInvalidPayload, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (p *Postgres) Append(ctx context.Context, scope string, a alerts.Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("%w: %w", alerts.ErrInvalidPayload, err)
	}
	_, err = p.db.Exec(ctx, pgAppendQuery, scope, a.ID, payload, p.now())
	return unavailable(err)
}

// Replace swaps the rows of a scope in a single transaction.
func (p *Postgres) Replace(ctx context.Context, scope string, list []alerts.Alert) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return unavailable(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, pgClearQuery, scope); err != nil {
		return unavailable(err)
	}

	batch := &pgx.Batch{}
	now := p.now()
	for i, a := range alerts.Dedupe(list) {
		payload, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("%w: %w", alerts.ErrInvalidPayload, err)
		}
		batch.Queue(pgInsertQuery, scope, i, a.ID, payload, now)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return unavailable(err)
		}
	}

	return unavailable(tx.Commit(ctx))
}

func (p *Postgres) Clear(ctx context.Context, scope string) error {
	_, err := p.db.Exec(ctx, pgClearQuery, scope)
	return unavailable(err)
}
