package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/assessment-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY,
	record        TEXT NOT NULL,
	persona       TEXT NOT NULL,
	lead_score    INTEGER NOT NULL,
	lead_priority TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	delivered_at  DATETIME
);

CREATE INDEX IF NOT EXISTS idx_assessments_persona ON assessments(persona);
CREATE INDEX IF NOT EXISTS idx_assessments_lead_score ON assessments(lead_score);
CREATE INDEX IF NOT EXISTS idx_assessments_delivered_at ON assessments(delivered_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, result *model.Result) (*Assessment, error) {
	recordJSON, err := json.Marshal(result.Record)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal record")
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

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, record, persona, lead_score, lead_priority, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, string(recordJSON), string(a.Persona), a.LeadScore, a.LeadPriority, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert assessment")
	}
	return a, nil
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, record, persona, lead_score, lead_priority, created_at, delivered_at FROM assessments WHERE id = ?`,
		id,
	)
	return scanAssessment(row)
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter Filter) ([]Assessment, error) {
	query := `SELECT id, record, persona, lead_score, lead_priority, created_at, delivered_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Persona != "" {
		query += ` AND persona = ?`
		args = append(args, string(filter.Persona))
	}
	if filter.MinLeadScore > 0 {
		query += ` AND lead_score >= ?`
		args = append(args, filter.MinLeadScore)
	}
	if filter.Undelivered {
		query += ` AND delivered_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

func (s *SQLiteStore) MarkDelivered(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE assessments SET delivered_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark delivered %s", id)
	}
	return checkRowsAffected(res, "assessment", id)
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (*Assessment, error) {
	var a Assessment
	var recordJSON string
	var persona string
	var deliveredAt sql.NullTime

	err := row.Scan(&a.ID, &recordJSON, &persona, &a.LeadScore, &a.LeadPriority, &a.CreatedAt, &deliveredAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("assessment not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}

	a.Persona = model.Tier(persona)
	if err := json.Unmarshal([]byte(recordJSON), &a.Record); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal record")
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		a.DeliveredAt = &t
	}
	return &a, nil
}
