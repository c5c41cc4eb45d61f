package main

import (
	"github.com/hibiken/asynq"

	movieJob "moviecatalog-backend/internal/domains/movie/job"
	"moviecatalog-backend/internal/shared"
	"moviecatalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	sweepOrphanCovers *movieJob.SweepOrphanCoversHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweepOrphanCovers: movieJob.NewSweepOrphanCoversHandler(
			c.MovieRepo,
			c.Storage,
			c.Config.Job.SweepMinAge,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSweepOrphanCovers, h.sweepOrphanCovers.ProcessTask)
}
