package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var ErrNoRecord = errors.New("no knowledge record loaded")

// Source supplies a validated record
type Source interface {
	Load(ctx context.Context) (*Record, error)
	Name() string
}

// FileSource loads the record from a JSON or YAML file
type FileSource struct {
	Path string
}

func (f FileSource) Load(_ context.Context) (*Record, error) {
	return LoadFile(f.Path)
}

func (f FileSource) Name() string {
	return "file:" + f.Path
}

// Store hands out the current record. Reloads swap the whole record, so a
// caller holding a *Record keeps a consistent snapshot.
type Store struct {
	source   Source
	logger   zerolog.Logger
	current  atomic.Pointer[Record]
	loadedAt atomic.Int64
	// fingerprint identifies the content of current
	fingerprint atomic.Pointer[string]
}

// NewStore creates a store backed by src. Call Reload to populate it.
func NewStore(src Source, logger zerolog.Logger) *Store {
	return &Store{
		source: src,
		logger: logger.With().Str("component", "knowledge_store").Logger(),
	}
}

// NewStaticStore wraps an already loaded record
func NewStaticStore(rec *Record) *Store {
	s := &Store{logger: zerolog.Nop()}
	s.Set(rec)
	return s
}

// Current returns the loaded record, or nil before the first load
func (s *Store) Current() *Record {
	return s.current.Load()
}

// Set replaces the current record
func (s *Store) Set(rec *Record) {
	fp := Fingerprint(rec)
	s.current.Store(rec)
	s.fingerprint.Store(&fp)
	s.loadedAt.Store(time.Now().UnixNano())
}

// Fingerprint identifies the content of the current record. It changes on
// every reload that changes the record, whether or not Version was bumped.
func (s *Store) Fingerprint() string {
	if fp := s.fingerprint.Load(); fp != nil {
		return *fp
	}
	return ""
}

// Fingerprint hashes the JSON encoding of r
func Fingerprint(r *Record) string {
	if r == nil {
		return ""
	}
	data, err := json.Marshal(r)
	if err != nil {
		return r.Version
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:12])
}

// LoadedAt reports when the current record was installed
func (s *Store) LoadedAt() time.Time {
	ns := s.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Reload fetches a fresh record from the source. On failure the previous
// record stays in place.
func (s *Store) Reload(ctx context.Context) (*Record, error) {
	if s.source == nil {
		if rec := s.Current(); rec != nil {
			return rec, nil
		}
		return nil, ErrNoRecord
	}

	rec, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("source", s.source.Name()).Msg("knowledge reload failed, keeping previous record")
		return nil, fmt.Errorf("reload from %s: %w", s.source.Name(), err)
	}

	s.Set(rec)
	sum := Summarize(rec)
	s.logger.Info().
		Str("source", s.source.Name()).
		Str("version", sum.Version).
		Int("projects", sum.Projects).
		Int("faq", sum.FAQ).
		Msg("knowledge record loaded")
	return rec, nil
}
