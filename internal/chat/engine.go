package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/themobileprof/portfolio-concierge/internal/cache"
	"github.com/themobileprof/portfolio-concierge/internal/classifier"
	"github.com/themobileprof/portfolio-concierge/internal/db"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/privacy"
	"github.com/themobileprof/portfolio-concierge/internal/resolver"
	"github.com/themobileprof/portfolio-concierge/internal/textnorm"
)

// Responder defines the interface for sending responses to any transport
type Responder interface {
	SendMessage(reply Reply) error
	SendError(message string) error
	SendDone() error
}

// Reply is a resolved answer ready for a transport
type Reply struct {
	Content string           `json:"content"`
	Source  string           `json:"source"`
	Actions []knowledge.Link `json:"actions,omitempty"`
	Intent  string           `json:"intent"`
}

// ProcessRequest contains all data needed to process a message
type ProcessRequest struct {
	RequestID  string
	RemoteAddr string
	Message    string
	Responder  Responder
}

// RecordProvider hands out the live knowledge record
type RecordProvider interface {
	Current() *knowledge.Record
	Fingerprint() string
}

// QueryLogger persists resolved questions
type QueryLogger interface {
	Record(ctx context.Context, e db.QueryLogEntry) error
}

// Engine resolves visitor messages independent of transport. It wraps the
// pure resolver with caching, logging and the query log.
type Engine struct {
	records     RecordProvider
	resolver    *resolver.Resolver
	cache       cache.Client
	cacheTTL    time.Duration
	queryLog    QueryLogger
	logTimeout  time.Duration
	visitorSalt string
	logger      zerolog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithCache caches resolved answers for ttl
func WithCache(c cache.Client, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

// WithQueryLog records every resolved message. salt keys visitor pseudonyms.
func WithQueryLog(l QueryLogger, salt string) Option {
	return func(e *Engine) {
		e.queryLog = l
		e.visitorSalt = salt
	}
}

// WithLogger sets the engine logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a new transport-agnostic chat engine
func NewEngine(records RecordProvider, opts ...Option) *Engine {
	e := &Engine{
		records:    records,
		resolver:   resolver.New(),
		logTimeout: 2 * time.Second,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "chat_engine").Logger()
	return e
}

// Ask resolves a single message. Actions are capped at resolver.MaxActions.
func (e *Engine) Ask(ctx context.Context, req ProcessRequest) Reply {
	start := time.Now()
	logger := e.logger.With().Str("request_id", req.RequestID).Logger()

	rec := e.records.Current()
	if rec == nil {
		logger.Warn().Msg("no knowledge record loaded, answering from built-in fallback")
	}

	if privacy.ContainsPII(req.Message) {
		logger.Warn().Msg("potential PII detected in visitor message")
	}

	key := cache.Key(e.records.Fingerprint(), textnorm.Normalize(req.Message))
	result, cached := e.lookup(ctx, key)
	if !cached {
		result = e.resolver.Resolve(req.Message, rec)
		e.store(ctx, key, result)
	}
	result.Actions = resolver.TruncateActions(result.Actions)

	latency := time.Since(start)
	logger.Info().
		Str("intent", string(result.Intent)).
		Str("source", result.Source).
		Str("faq_id", result.FAQID).
		Bool("cached", cached).
		Dur("latency", latency).
		Msg("message resolved")

	e.logQuery(ctx, req, result, latency)

	return Reply{
		Content: result.Answer,
		Source:  result.Source,
		Actions: result.Actions,
		Intent:  string(result.Intent),
	}
}

// ProcessMessage resolves a message and sends the reply via the provided responder
func (e *Engine) ProcessMessage(ctx context.Context, req ProcessRequest) (Reply, error) {
	if req.Responder == nil {
		return Reply{}, errors.New("chat: nil responder")
	}

	reply := e.Ask(ctx, req)
	if err := req.Responder.SendMessage(reply); err != nil {
		return reply, err
	}
	return reply, req.Responder.SendDone()
}

func (e *Engine) lookup(ctx context.Context, key string) (resolver.Result, bool) {
	if e.cache == nil {
		return resolver.Result{}, false
	}
	data, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn().Err(err).Msg("answer cache read failed")
		}
		return resolver.Result{}, false
	}

	var result resolver.Result
	if err := json.Unmarshal(data, &result); err != nil {
		e.logger.Warn().Err(err).Msg("discarding undecodable cache entry")
		return resolver.Result{}, false
	}
	return result, true
}

func (e *Engine) store(ctx context.Context, key string, result resolver.Result) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
		e.logger.Warn().Err(err).Msg("answer cache write failed")
	}
}

func (e *Engine) logQuery(ctx context.Context, req ProcessRequest, result resolver.Result, latency time.Duration) {
	if e.queryLog == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.logTimeout)
	defer cancel()

	entry := db.QueryLogEntry{
		RequestID: req.RequestID,
		Visitor:   privacy.AnonymizeIP(req.RemoteAddr, e.visitorSalt),
		Query:     privacy.SanitizeForLogging(req.Message),
		Intent:    string(result.Intent),
		Source:    result.Source,
		FAQID:     result.FAQID,
		Refused:   result.Intent == classifier.IntentRefused,
		Answered:  result.Intent != classifier.IntentUnclear,
		Latency:   latency,
	}
	if err := e.queryLog.Record(ctx, entry); err != nil {
		e.logger.Warn().Err(err).Str("request_id", req.RequestID).Msg("failed to record query")
	}
}
