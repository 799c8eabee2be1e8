package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TobiAkinkuotu/flashcard-server/internal/api"
	"github.com/TobiAkinkuotu/flashcard-server/internal/config"
	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository/mongostore"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository/sqlstore"
	"github.com/TobiAkinkuotu/flashcard-server/internal/services"
	"github.com/TobiAkinkuotu/flashcard-server/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("flashcard server starting")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("progress_store=%s", cfg.ProgressStore)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)

	database, err := db.Open(cfg.DBDriver, cfg.DBPath, cfg.DBURL, log)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	userRepo := sqlstore.NewUserRepository(database)
	deckRepo := sqlstore.NewDeckRepository(database)
	quizRepo := sqlstore.NewQuizRepository(database)

	var progressRepo repository.ProgressRepository
	var mongoClient *mongo.Client
	if cfg.UsesMongo() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoClient, err = mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		cancel()
		if err != nil {
			log.Error("failed to connect to mongodb: %v", err)
			os.Exit(1)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
		progressRepo = mongostore.NewProgressRepository(mongoClient.Database(cfg.MongoDatabase))
		log.Info("progress store: mongodb database %s", cfg.MongoDatabase)
	} else {
		progressRepo = sqlstore.NewProgressRepository(database)
		log.Info("progress store: %s", database.Dialect().Name())
	}

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	userService := services.NewUserService(userRepo)
	deckService := services.NewDeckService(deckRepo)
	progressService := services.NewProgressService(progressRepo)
	quizService := services.NewQuizService(quizRepo, deckRepo, progressService)

	srv := &api.Server{
		DB:              database,
		UserService:     userService,
		DeckService:     deckService,
		QuizService:     quizService,
		ProgressService: progressService,
		ImportPool:      importPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop accepting requests first, then drain the pool. Cancelling the
	// pool's parent context before Stop would drop accepted imports.
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	importPool.Stop()
	cancel()

	log.Info("flashcard server stopped")
}
