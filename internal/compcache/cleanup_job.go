package compcache

import (
	"github.com/rs/zerolog"
)

// Checkpointer forces a WAL checkpoint after large deletes.
type Checkpointer interface {
	WALCheckpoint(mode string) error
}

// CleanupJob removes rows past their storage horizon.
// It satisfies cron.Job and should be scheduled to run daily.
type CleanupJob struct {
	repo *Repository
	db   Checkpointer
	log  zerolog.Logger
}

// NewCleanupJob creates a new comp cache cleanup job.
// db may be nil, in which case the post-cleanup checkpoint is skipped.
func NewCleanupJob(repo *Repository, db Checkpointer, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		db:   db,
		log:  log.With().Str("job", "comp_cache_cleanup").Logger(),
	}
}

// Run executes the cleanup job, removing all expired entries.
func (j *CleanupJob) Run() {
	deleted, err := j.repo.DeleteExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired comp cache entries")
		return
	}

	if deleted > 0 {
		j.log.Info().Int64("deleted", deleted).Msg("Cleaned up expired comp cache entries")

		if j.db != nil {
			if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
				j.log.Warn().Err(err).Msg("Post-cleanup WAL checkpoint failed")
			}
		}
	}
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "comp_cache_cleanup"
}
