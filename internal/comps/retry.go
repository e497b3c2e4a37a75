package comps

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RetryPolicy controls the retry wrapper around provider calls.
type RetryPolicy struct {
	Attempts     int
	InitialDelay time.Duration
}

// DefaultRetryPolicy matches the provider-call contract: up to 3 attempts
// with exponential backoff starting at one second.
var DefaultRetryPolicy = RetryPolicy{
	Attempts:     3,
	InitialDelay: time.Second,
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = DefaultRetryPolicy.Attempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = DefaultRetryPolicy.InitialDelay
	}
	return p
}

// withRetry runs fn up to p.Attempts times, sleeping initial << attempt
// between failures. The sleep honors context cancellation. The last error
// is returned only after all attempts are exhausted.
func withRetry(ctx context.Context, p RetryPolicy, log zerolog.Logger, fn func() error) error {
	p = p.withDefaults()

	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if attempt > 0 {
			delay := p.InitialDelay * (1 << (attempt - 1))
			log.Debug().
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("Retrying after backoff")

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err = fn(); err == nil {
			return nil
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", p.Attempts).
			Msg("Provider call failed")
	}

	return err
}
