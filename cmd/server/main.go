package main

import (
	"context"
	"edu_platform/internal/api"
	"edu_platform/internal/app/service"
	"edu_platform/internal/app/worker"
	"edu_platform/internal/common/security"
	"edu_platform/internal/domain/repository"
	"edu_platform/internal/platform/config"
	"edu_platform/internal/platform/database"
	"edu_platform/internal/platform/queue"
	"edu_platform/internal/seed"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)

	// 3. Seed the catalog
	store := repository.NewMemoryStore()
	data, err := seed.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to read seed catalog: %v", err)
	}
	if err := seed.Load(ctx, store, store, data); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Println("Catalog seeded.")

	// 4. Initialize Repositories
	var (
		userRepo     repository.UserRepository     = store
		progressRepo repository.ProgressRepository = store
	)
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := database.Connect(ctx, cfg.DBConnStr)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repository.NewPgUserRepository(db)
		progressRepo = repository.NewPgProgressRepository(db)
		log.Println("Database connected.")
	}

	// 5. Initialize Redis (optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = queue.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer queue.CloseRedis(rdb)
		log.Println("Redis connected.")
	} else {
		log.Println("REDIS_ADDR not set, progress is recomputed inline.")
	}

	// 6. Initialize Services
	var source service.ProgressSource = service.NewPersistedProgress(progressRepo, store)
	if cfg.ProgressMode == config.ProgressModeDemo {
		source = service.NewDemoProgress(nil)
	}
	progressService := service.NewProgressService(store, store, progressRepo)
	var jobQueue service.JobQueue // nil interface means inline recompute
	if rdb != nil {
		jobQueue = rdb
	}
	jobService := service.NewProgressJobService(jobQueue, cfg.ProgressQueueName, progressService, store, progressRepo)
	catalogService := service.NewCatalogService(store, store, source, service.NewMarkdownRenderer(), cfg.FeaturedLimit)
	quizService := service.NewQuizService(store, progressRepo, jobService)
	authService := service.NewAuthService(userRepo, tokens)

	// 7. Initialize Progress worker and sweep (as goroutines)
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	if rdb != nil {
		progressWorker := worker.NewProgressWorker(rdb, cfg.ProgressQueueName, cfg.ProgressLockPrefix,
			time.Duration(cfg.ProgressLockTTLSeconds)*time.Second, progressService)
		go progressWorker.Start(workerCtx)
		log.Println("Progress worker started.")
	}
	if cfg.ProgressSweepSpec != "" {
		if _, err := worker.StartSweepSchedule(workerCtx, cfg.ProgressSweepSpec, jobService); err != nil {
			log.Fatalf("Failed to schedule progress sweep: %v", err)
		}
		log.Printf("Progress sweep scheduled (%s).", cfg.ProgressSweepSpec)
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(tokens, authService, catalogService, quizService, progressService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker and sweep to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
