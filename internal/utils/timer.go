package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer measures operation duration and logs it on Stop.
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
}

// NewTimer creates a timer that starts immediately.
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
	}
}

// Stop stops the timer, logs the duration, and returns it.
// Operations over ten seconds are logged at warn level so slow external
// calls stand out without needing a metrics stack.
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	if duration > 10*time.Second {
		event = t.log.Warn()
	}

	event.
		Str("operation", t.name).
		Dur("duration_ms", duration).
		Msg("Operation timed")

	return duration
}
