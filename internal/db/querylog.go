package db

import (
	"context"
	"fmt"
	"time"

	"github.com/themobileprof/portfolio-concierge/internal/circuitbreaker"
)

// QueryLogEntry is one resolved visitor message. Query must already be
// redacted.
type QueryLogEntry struct {
	ID        int64
	RequestID string
	Visitor   string
	Query     string
	Intent    string
	Source    string
	FAQID     string
	Refused   bool
	Answered  bool
	Latency   time.Duration
	CreatedAt time.Time
}

// UnansweredQuery groups repeated questions that ended in the unknown refusal
type UnansweredQuery struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// QueryLog records resolved questions so the site owner can see what
// visitors ask and which answers are missing.
type QueryLog struct {
	db      *DB
	breaker *circuitbreaker.CircuitBreaker
}

// NewQueryLog creates a query log. breaker may be nil.
func NewQueryLog(db *DB, breaker *circuitbreaker.CircuitBreaker) *QueryLog {
	return &QueryLog{db: db, breaker: breaker}
}

// Record inserts an entry
func (l *QueryLog) Record(ctx context.Context, e QueryLogEntry) error {
	if l.db == nil {
		return ErrNoDB
	}

	query := `
		INSERT INTO query_log (request_id, visitor, query, intent, source, faq_id, refused, answered, latency_us)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	err := l.guard(ctx, func(ctx context.Context) error {
		_, err := l.db.ExecContext(ctx, query,
			e.RequestID, e.Visitor, e.Query, e.Intent, e.Source, e.FAQID,
			e.Refused, e.Answered, e.Latency.Microseconds(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// Unanswered lists the most frequent unanswered questions since the given time
func (l *QueryLog) Unanswered(ctx context.Context, since time.Time, limit int) ([]UnansweredQuery, error) {
	if l.db == nil {
		return nil, ErrNoDB
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT query, COUNT(*) AS hits, MAX(created_at) AS last_seen
		FROM query_log
		WHERE answered = FALSE AND created_at >= $1
		GROUP BY query
		ORDER BY hits DESC, last_seen DESC
		LIMIT $2
	`

	var out []UnansweredQuery
	err := l.guard(ctx, func(ctx context.Context) error {
		rows, err := l.db.QueryContext(ctx, query, since, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = out[:0]
		for rows.Next() {
			var q UnansweredQuery
			if err := rows.Scan(&q.Query, &q.Count, &q.LastSeen); err != nil {
				return err
			}
			out = append(out, q)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unanswered queries: %w", err)
	}
	return out, nil
}

func (l *QueryLog) guard(ctx context.Context, fn func(ctx context.Context) error) error {
	if l.breaker == nil {
		return fn(ctx)
	}
	return l.breaker.Execute(ctx, fn)
}
