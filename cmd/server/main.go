package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisor-api/config"
	"advisor-api/internal/cache"
	"advisor-api/internal/logger"
	"advisor-api/internal/repository"
	"advisor-api/internal/service"
	"advisor-api/internal/transport/rest"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", "error", err)
	}
	log.Info("connected to MongoDB", "uri", cfg.MongoURI)

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", "error", err)
	}
	log.Info("connected to Redis", "addr", cfg.RedisAddr)

	// Repositories
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	ruleRepo := repository.NewRuleRepo(db)
	offeringRepo := repository.NewOfferingRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Caches
	questionnaireCache := cache.NewQuestionnaireCache(rdb)
	cursorCache := cache.NewCursorCache(rdb)
	roadmapCache := cache.NewRoadmapCache(rdb)

	// Services
	catalogSvc := service.NewCatalogService(questionnaireRepo, ruleRepo, offeringRepo, questionnaireCache, log)
	params := service.ScoreParams{MinScore: cfg.MinScore}
	roadmapSvc := service.NewRoadmapService(submissionRepo, answerRepo, ruleRepo, offeringRepo, catalogSvc, roadmapCache, params, log)
	notifier := service.NewRelayNotifier(cfg.NotifyURL, cfg.NotifyFrom, cfg.NotifyTo, log)
	submissionSvc := service.NewSubmissionService(submissionRepo, answerRepo, catalogSvc, roadmapSvc, cursorCache, notifier, log)
	exportSvc := service.NewExportService(roadmapSvc, submissionSvc)

	if cfg.NotifyURL == "" {
		log.Warn("NOTIFY_URL not set, roadmap notifications disabled")
	}

	// Load-time integrity sweep over the stored decision matrix
	questionnaires, err := questionnaireRepo.List(ctx)
	if err != nil {
		log.Fatal("failed to load questionnaires", "error", err)
	}
	for _, q := range questionnaires {
		if err := q.Validate(); err != nil {
			log.Error("questionnaire failed validation", "questionnaireId", q.ID, "error", err)
		}
		if err := catalogSvc.ValidateMatrix(ctx, q.ID); err != nil {
			log.Error("decision matrix failed validation", "questionnaireId", q.ID, "error", err)
		}
	}

	container := &rest.Container{
		CatalogService:    catalogSvc,
		SubmissionService: submissionSvc,
		RoadmapService:    roadmapSvc,
		ExportService:     exportSvc,
		AdminToken:        cfg.AdminToken,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen and serve", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
