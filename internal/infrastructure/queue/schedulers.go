package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"moviecatalog-backend/internal/config"
	"moviecatalog-backend/internal/domains/movie/job"
	"moviecatalog-backend/internal/shared"
	"moviecatalog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerSweepOrphanCoversJob()
}

// Orphan cover sweep, daily at 3 AM. Low traffic time, and the min-age
// guard keeps in-flight uploads out of scope.
func (s *Scheduler) registerSweepOrphanCoversJob() error {
	payload, err := json.Marshal(job.SweepOrphanCoversPayload{
		MinAge: s.jobConfig.SweepMinAge,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanCovers, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueMovie),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SweepOrphanCovers job", err)
		return err
	}

	logger.Info("Registered SweepOrphanCovers: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
