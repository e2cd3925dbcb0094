package source

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"typeahead/internal/domain"
)

// ErrSimulatedFailure is returned by lookups failed on purpose by Latency
var ErrSimulatedFailure = errors.New("simulated lookup failure")

// Latency makes a source behave like a remote one: every lookup takes a
// random time within [Min, Max] and fails with probability FailRate, so
// completions arrive out of order
type Latency struct {
	Min      time.Duration
	Max      time.Duration
	FailRate float64

	// Float64 returns a number in [0, 1). Defaults to math/rand/v2.
	Float64 func() float64
}

// Wrap returns src with the latency applied. A canceled context ends the
// wait early.
func (l Latency) Wrap(src domain.LookupFunc) domain.LookupFunc {
	random := l.Float64
	if random == nil {
		random = rand.Float64
	}
	lo, hi := l.Min, l.Max
	if hi < lo {
		lo, hi = hi, lo
	}

	return func(ctx context.Context, query string) (domain.SuggestionList, error) {
		wait := lo + time.Duration(float64(hi-lo)*random())
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if l.FailRate > 0 && random() < l.FailRate {
			return nil, fmt.Errorf("lookup %q: %w", query, ErrSimulatedFailure)
		}
		return src(ctx, query)
	}
}
