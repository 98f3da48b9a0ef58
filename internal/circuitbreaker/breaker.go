package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Config tunes a breaker
type Config struct {
	Name         string
	MaxFailures  int
	ResetTimeout time.Duration
	// HalfOpenProbes is how many calls may run while half-open
	HalfOpenProbes int
}

// DefaultConfig suits a single Postgres dependency
func DefaultConfig(name string) Config {
	return Config{
		Name:           name,
		MaxFailures:    5,
		ResetTimeout:   30 * time.Second,
		HalfOpenProbes: 1,
	}
}

// CircuitBreaker stops calling a failing dependency until ResetTimeout has
// passed, then lets a limited number of probes through.
type CircuitBreaker struct {
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time

	mu              sync.RWMutex
	state           State
	failures        int
	inFlight        int
	lastFailureTime time.Time
	lastStateChange time.Time
}

// New creates a breaker. Zero config values fall back to DefaultConfig.
func New(cfg Config, logger zerolog.Logger) *CircuitBreaker {
	def := DefaultConfig(cfg.Name)
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = def.ResetTimeout
	}
	if cfg.HalfOpenProbes <= 0 {
		cfg.HalfOpenProbes = def.HalfOpenProbes
	}
	return &CircuitBreaker{
		cfg:             cfg,
		logger:          logger.With().Str("breaker", cfg.Name).Logger(),
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute runs fn with circuit breaker protection. Context cancellation by
// the caller is not counted as a dependency failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := fn(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		cb.release()
		return err
	}
	cb.afterCall(err)

	return err
}

// Call executes fn without a context
func (cb *CircuitBreaker) Call(fn func() error) error {
	return cb.Execute(context.Background(), func(context.Context) error { return fn() })
}

// beforeCall checks if call is allowed
func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()

	switch cb.state {
	case StateOpen:
		if now.Sub(cb.lastFailureTime) < cb.cfg.ResetTimeout {
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen, now)
		cb.inFlight = 1
		return nil

	case StateHalfOpen:
		if cb.inFlight >= cb.cfg.HalfOpenProbes {
			return ErrTooManyRequests
		}
		cb.inFlight++
		return nil
	}

	return nil
}

// afterCall updates circuit breaker state after call
func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	if cb.state == StateHalfOpen && cb.inFlight > 0 {
		cb.inFlight--
	}

	if err != nil {
		cb.failures++
		cb.lastFailureTime = now

		switch cb.state {
		case StateClosed:
			if cb.failures >= cb.cfg.MaxFailures {
				cb.setState(StateOpen, now)
				cb.logger.Warn().Err(err).Int("failures", cb.failures).Msg("circuit opened")
			}
		case StateHalfOpen:
			cb.setState(StateOpen, now)
			cb.logger.Warn().Err(err).Msg("probe failed, circuit reopened")
		}
		return
	}

	switch cb.state {
	case StateHalfOpen:
		cb.setState(StateClosed, now)
		cb.failures = 0
		cb.logger.Info().Msg("circuit closed")
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateHalfOpen && cb.inFlight > 0 {
		cb.inFlight--
	}
}

func (cb *CircuitBreaker) setState(s State, at time.Time) {
	cb.state = s
	cb.lastStateChange = at
	if s != StateHalfOpen {
		cb.inFlight = 0
	}
}

// State returns current circuit breaker state
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() (state State, failures int, since time.Time) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state, cb.failures, cb.lastStateChange
}

// Reset resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.setState(StateClosed, cb.now())
	cb.failures = 0
}
