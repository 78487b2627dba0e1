package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/assessment-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, abstracted so tests
// can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY,
	record        JSONB NOT NULL,
	persona       TEXT NOT NULL,
	lead_score    INTEGER NOT NULL,
	lead_priority TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	delivered_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_assessments_persona ON assessments(persona);
CREATE INDEX IF NOT EXISTS idx_assessments_lead_score ON assessments(lead_score);
CREATE INDEX IF NOT EXISTS idx_assessments_delivered_at ON assessments(delivered_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, result *model.Result) (*Assessment, error) {
	recordJSON, err := json.Marshal(result.Record)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal record")
	}

	now := time.Now().UTC()
	a := &Assessment{
		ID:           result.Record.SessionID,
		Record:       result.Record,
		Persona:      result.Persona.Persona,
		LeadScore:    result.LeadScore,
		LeadPriority: result.LeadPriority.Level,
		CreatedAt:    now,
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, record, persona, lead_score, lead_priority, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, string(recordJSON), string(a.Persona), a.LeadScore, a.LeadPriority, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert assessment")
	}
	return a, nil
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, record, persona, lead_score, lead_priority, created_at, delivered_at FROM assessments WHERE id = $1`,
		id,
	)
	return scanPgAssessment(row)
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter Filter) ([]Assessment, error) {
	query := `SELECT id, record, persona, lead_score, lead_priority, created_at, delivered_at FROM assessments WHERE true`
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Persona != "" {
		query += ` AND persona = ` + arg(string(filter.Persona))
	}
	if filter.MinLeadScore > 0 {
		query += ` AND lead_score >= ` + arg(filter.MinLeadScore)
	}
	if filter.Undelivered {
		query += ` AND delivered_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)

	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func (s *PostgresStore) MarkDelivered(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments SET delivered_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: mark delivered %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("assessment not found: %s", id)
	}
	return nil
}

func scanPgAssessment(row scannable) (*Assessment, error) {
	var a Assessment
	var recordJSON []byte
	var persona string
	var deliveredAt *time.Time

	err := row.Scan(&a.ID, &recordJSON, &persona, &a.LeadScore, &a.LeadPriority, &a.CreatedAt, &deliveredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("assessment not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}

	a.Persona = model.Tier(persona)
	if err := json.Unmarshal(recordJSON, &a.Record); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal record")
	}
	a.DeliveredAt = deliveredAt
	return &a, nil
}
