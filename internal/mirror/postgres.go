package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMirror stores each entity kind in its own keyed table with the raw
// entity as a jsonb document. Secondary index columns (candidate_id, job_id)
// are extracted from the document on write.
type PostgresMirror struct {
	pool *pgxpool.Pool
}

// NewPostgresMirror creates a PostgresMirror over an existing pool.
func NewPostgresMirror(pool *pgxpool.Pool) *PostgresMirror {
	return &PostgresMirror{pool: pool}
}

// Connect opens a pgx pool against databaseURL and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// RunMigrations applies the mirror table migrations from dir.
func RunMigrations(databaseURL, dir string) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

const (
	upsertJob = `INSERT INTO mirror_jobs (key, doc) VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`
	upsertCandidate = `INSERT INTO mirror_candidates (key, doc) VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`
	upsertTimeline = `INSERT INTO mirror_timelines (key, candidate_id, doc)
		VALUES ($1, ($2::jsonb)->>'candidateId', $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, candidate_id = EXCLUDED.candidate_id`
	upsertAssessment = `INSERT INTO mirror_assessments (key, doc) VALUES ($1, $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`
	upsertSubmission = `INSERT INTO mirror_submissions (key, job_id, candidate_id, doc)
		VALUES ($1, ($2::jsonb)->>'jobId', ($2::jsonb)->>'candidateId', $2::jsonb)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc,
			job_id = EXCLUDED.job_id, candidate_id = EXCLUDED.candidate_id`
)

func (m *PostgresMirror) Put(ctx context.Context, kind Kind, key string, entity any) error {
	b, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, key, err)
	}

	var sql string
	switch kind {
	case KindJob:
		sql = upsertJob
	case KindCandidate:
		sql = upsertCandidate
	case KindTimeline:
		sql = upsertTimeline
	case KindAssessment:
		sql = upsertAssessment
	case KindSubmission:
		sql = upsertSubmission
	default:
		return fmt.Errorf("unknown mirror kind %q", kind)
	}

	if _, err := m.pool.Exec(ctx, sql, key, string(b)); err != nil {
		return fmt.Errorf("mirror %s %s: %w", kind, key, err)
	}
	return nil
}

func (m *PostgresMirror) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

func (m *PostgresMirror) Close() error {
	m.pool.Close()
	return nil
}

// Get reads one mirrored document back, mainly for verification and tooling.
func (m *PostgresMirror) Get(ctx context.Context, kind Kind, key string) ([]byte, bool, error) {
	var doc []byte
	err := m.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT doc FROM mirror_%s WHERE key = $1`, kind), key,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s %s: %w", kind, key, err)
	}
	return doc, true, nil
}
