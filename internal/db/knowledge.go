package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/themobileprof/portfolio-concierge/internal/circuitbreaker"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
)

// StoredRecord is one saved revision of the knowledge record
type StoredRecord struct {
	ID        int64
	Version   string
	Note      string
	Record    *knowledge.Record
	CreatedAt time.Time
}

// KnowledgeRepository keeps knowledge record revisions as JSONB documents.
// The newest row is the live record.
type KnowledgeRepository struct {
	db      *DB
	breaker *circuitbreaker.CircuitBreaker
}

// NewKnowledgeRepository creates a repository. breaker may be nil.
func NewKnowledgeRepository(db *DB, breaker *circuitbreaker.CircuitBreaker) *KnowledgeRepository {
	return &KnowledgeRepository{db: db, breaker: breaker}
}

// Latest returns the newest stored revision
func (r *KnowledgeRepository) Latest(ctx context.Context) (*StoredRecord, error) {
	if r.db == nil {
		return nil, ErrNoDB
	}

	query := `
		SELECT id, version, note, document, created_at
		FROM knowledge_records
		ORDER BY id DESC
		LIMIT 1
	`

	var (
		stored StoredRecord
		doc    []byte
	)
	err := r.guard(ctx, func(ctx context.Context) error {
		err := r.db.QueryRowContext(ctx, query).Scan(
			&stored.ID, &stored.Version, &stored.Note, &doc, &stored.CreatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			// an empty table is not a dependency failure
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge record: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	rec, err := knowledge.Decode(doc, knowledge.FormatJSON)
	if err != nil {
		return nil, err
	}
	if rec.Version == "" {
		rec.Version = stored.Version
	}
	stored.Record = rec
	return &stored, nil
}

// Save validates rec and stores it as the newest revision
func (r *KnowledgeRepository) Save(ctx context.Context, rec *knowledge.Record, note string) (int64, error) {
	if r.db == nil {
		return 0, ErrNoDB
	}
	if err := knowledge.Validate(rec); err != nil {
		return 0, err
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encode knowledge record: %w", err)
	}

	query := `
		INSERT INTO knowledge_records (version, document, note)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err = r.guard(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, rec.Version, doc, note).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save knowledge record: %w", err)
	}
	return id, nil
}

// Load implements knowledge.Source
func (r *KnowledgeRepository) Load(ctx context.Context) (*knowledge.Record, error) {
	stored, err := r.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if err := knowledge.Validate(stored.Record); err != nil {
		return nil, fmt.Errorf("stored revision %d: %w", stored.ID, err)
	}
	return stored.Record, nil
}

// Name implements knowledge.Source
func (r *KnowledgeRepository) Name() string {
	return "postgres:knowledge_records"
}

func (r *KnowledgeRepository) guard(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.breaker == nil {
		return fn(ctx)
	}
	return r.breaker.Execute(ctx, fn)
}
