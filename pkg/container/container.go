package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"moviecatalog-backend/internal/config"
	infraCache "moviecatalog-backend/internal/infrastructure/cache"
	"moviecatalog-backend/internal/infrastructure/database"
	"moviecatalog-backend/internal/infrastructure/storage"
	"moviecatalog-backend/pkg/cache"

	movieHandler "moviecatalog-backend/internal/domains/movie/handler"
	movieRepo "moviecatalog-backend/internal/domains/movie/repository"
	movieService "moviecatalog-backend/internal/domains/movie/service"
)

// Container holds the full dependency graph. Everything here is a
// singleton that lives for the process lifetime.
type Container struct {
	// Infrastructure
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage storage.Storage

	// Movie domain
	MovieRepo    movieRepo.RepositoryInterface
	CoverStore   *movieService.CoverStore
	MovieService movieService.ServiceInterface
	MovieHandler *movieHandler.Handler
}

// NewContainer wires the graph bottom-up: config, then infrastructure,
// then repositories, services and handlers. Order matters.
func NewContainer() (*Container, error) {
	log.Println("[Container] Initializing...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Cache is an optimization here, not a dependency.
		log.Printf("[Container] Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("[Container] Redis connected")
	}
	c.Cache = redisCache

	st, err := newStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = st
	log.Printf("[Container] Storage ready (backend: %s)", cfg.Storage.Backend)

	c.MovieRepo = movieRepo.NewPostgresRepository(db.Pool)
	c.CoverStore = movieService.NewCoverStore(c.Storage)
	c.MovieService = movieService.NewService(c.MovieRepo, c.CoverStore, c.Cache)
	c.MovieHandler = movieHandler.NewHandler(c.MovieService, c.Cache)

	log.Println("[Container] Initialized")
	return c, nil
}

func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Backend {
	case "minio":
		return storage.NewMinIOStorage(cfg.MinIO)
	default:
		return storage.NewLocalStorage(cfg.LocalRoot)
	}
}

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	log.Println("[Container] Cleaning up...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("[Container] Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close Redis: %v", err)
			} else {
				log.Println("[Container] Redis connections closed")
			}
		}
	}

	log.Println("[Container] Cleanup completed")
}
