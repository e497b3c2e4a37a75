package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int
}

func (j *countingJob) Run()         { j.runs++ }
func (j *countingJob) Name() string { return "counting" }

func TestAddJobRejectsInvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
}

func TestAddJobAcceptsCronAndDescriptors(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("@daily", &countingJob{}))
	require.NoError(t, s.AddJob("30 3 * * *", &countingJob{}))
}

func TestRunNowExecutesImmediately(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{}

	s.RunNow(job)
	s.RunNow(job)

	assert.Equal(t, 2, job.runs)
}

func TestStartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@daily", &countingJob{}))

	s.Start()
	s.Stop()
}
