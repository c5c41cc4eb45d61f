package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"moviecatalog-backend/internal/domains/movie/repository"
	"moviecatalog-backend/internal/infrastructure/storage"
	"moviecatalog-backend/pkg/logger"
)

type SweepOrphanCoversPayload struct {
	MinAge time.Duration `json:"min_age,omitempty"`
}

// SweepOrphanCoversHandler removes cover objects that no movie record
// references anymore. Covers can be stranded when a delete succeeds in the
// database but the storage removal fails afterwards.
type SweepOrphanCoversHandler struct {
	repo    repository.RepositoryInterface
	storage storage.Storage
	minAge  time.Duration
}

func NewSweepOrphanCoversHandler(
	repo repository.RepositoryInterface,
	st storage.Storage,
	minAge time.Duration,
) *SweepOrphanCoversHandler {
	return &SweepOrphanCoversHandler{
		repo:    repo,
		storage: st,
		minAge:  minAge,
	}
}

func (h *SweepOrphanCoversHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepOrphanCoversPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal fail due to ", err)
		return asynq.SkipRetry
	}

	minAge := h.minAge
	if payload.MinAge > 0 {
		minAge = payload.MinAge
	}
	cutoff := time.Now().Add(-minAge)

	log.Info().
		Dur("min_age", minAge).
		Msg("Starting orphan cover sweep")

	referenced, err := h.repo.ListCoverPaths(ctx)
	if err != nil {
		logger.Error("List cover paths fail due to ", err)
		return err
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		refSet[p] = struct{}{}
	}

	objects, err := h.storage.List(ctx, "image/")
	if err != nil {
		logger.Error("List stored covers fail due to ", err)
		return err
	}

	removed := 0
	for _, obj := range objects {
		if _, ok := refSet[obj.Key]; ok {
			continue
		}
		// Young files may belong to a create still in flight; skip them
		// until the next run.
		if obj.ModTime.After(cutoff) {
			continue
		}
		if err := h.storage.Remove(ctx, obj.Key); err != nil {
			logger.Error("Remove orphan cover fail due to ", err)
			continue
		}
		removed++
	}

	log.Info().
		Int("scanned", len(objects)).
		Int("removed", removed).
		Msg("Orphan cover sweep finished")

	return nil
}
