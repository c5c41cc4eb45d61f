package shared

// Asynq task types and queues.
const (
	TypeSweepOrphanCovers = "movie:sweep_orphan_covers"

	QueueMovie = "movie"
)
