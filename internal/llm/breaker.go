package llm

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrBreakerOpen is returned without calling the oracle while the breaker rejects requests
var ErrBreakerOpen = errors.New("oracle circuit breaker is open")

// BreakerClient guards a Client with a circuit breaker. Rejected calls fail fast and are
// never retried.
type BreakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker[string]
}

// NewBreakerClient wraps next. A disabled breaker returns next unchanged.
func NewBreakerClient(next Client, cfg BreakerConfig, log *zap.Logger) Client {
	if !cfg.Enabled {
		return next
	}
	if log == nil {
		log = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        "oracle",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// Cancellation by the caller says nothing about oracle health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &BreakerClient{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](settings),
	}
}

// GenerateJSON forwards to the wrapped client unless the breaker is open
func (b *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		return b.next.GenerateJSON(ctx, prompt, tier)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.Join(ErrBreakerOpen, err)
	}
	return out, err
}

// State returns the breaker state name
func (b *BreakerClient) State() string {
	return b.cb.State().String()
}

// Close closes the wrapped client
func (b *BreakerClient) Close() error {
	return b.next.Close()
}
