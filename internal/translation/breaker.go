package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

const defaultMaxFailures uint32 = 5

// BreakerTranslator stops calling a failing provider until OpenTimeout has passed.
type BreakerTranslator struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerTranslator(next Translator, maxFailures uint32, openTimeout time.Duration, logger *slog.Logger) *BreakerTranslator {
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	settings := gobreaker.Settings{
		Name:        "translation",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerTranslator{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerTranslator) Translate(ctx context.Context, text string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State reports the breaker state ("closed", "open", "half-open").
func (b *BreakerTranslator) State() string {
	return b.cb.State().String()
}
