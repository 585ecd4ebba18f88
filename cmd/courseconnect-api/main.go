package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/courseconnect-api/api/swagger"
	"github.com/noah-isme/courseconnect-api/internal/enrollment"
	"github.com/noah-isme/courseconnect-api/internal/handler"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	"github.com/noah-isme/courseconnect-api/internal/router"
	"github.com/noah-isme/courseconnect-api/internal/service"
	"github.com/noah-isme/courseconnect-api/pkg/cache"
	"github.com/noah-isme/courseconnect-api/pkg/config"
	"github.com/noah-isme/courseconnect-api/pkg/events"
	"github.com/noah-isme/courseconnect-api/pkg/jobs"
	"github.com/noah-isme/courseconnect-api/pkg/llm"
	"github.com/noah-isme/courseconnect-api/pkg/logger"
)

// @title CourseConnect API
// @version 1.0.0
// @description Course registration, announcements and the CourseBot assistant.
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := func() repository.Seed { return repository.DefaultSeed(time.Now()) }
	store := repository.NewStore(seed())
	engine := enrollment.New(enrollment.Config{DefaultCapacity: cfg.Session.DefaultCapacity})
	validate := validator.New()
	metrics := service.NewMetricsService()

	var (
		redisClient *redis.Client
		redisRepo   *repository.CacheRepository
		cacheRepo   service.CacheRepository
	)
	cacheEnabled := cfg.Cache.Enabled
	if cacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, view cache disabled", zap.Error(err))
			cacheEnabled = false
		} else {
			redisRepo = repository.NewCacheRepository(redisClient, cfg.Cache.KeyPrefix, logr)
			cacheRepo = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ViewTTL, logr, cacheEnabled)

	bus := events.NewBus(events.BusConfig{Logger: logr})
	activity := service.NewActivityService(bus, cfg.Activity.LogSize, metrics, logr)
	if err := activity.Start(ctx); err != nil {
		logr.Fatal("failed to subscribe activity feed", zap.Error(err))
	}

	gemini, err := llm.NewGemini(ctx, cfg.Gemini, logr)
	if err != nil {
		logr.Fatal("failed to init gemini client", zap.Error(err))
	}
	advisor := service.NewAdvisoryService(gemini, metrics, logr)
	chat := service.NewChatService(advisor, store, logr)

	drafts := service.NewSyllabusDraftStore()
	worker := service.NewSyllabusWorker(drafts, advisor, logr)
	queue := jobs.NewQueue("syllabus", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Assistant.SyllabusWorkers,
		BufferSize: cfg.Assistant.SyllabusBuffer,
		Logger:     logr,
	})
	queue.Start(ctx)
	syllabus := service.NewSyllabusService(drafts, queue, logr)

	sessions := service.NewSessionService(store, cfg.Session.DefaultUserID, logr)
	views := service.NewViewService(store, seed, cacheSvc, bus, logr, sessions, chat, drafts)
	courses := service.NewCourseService(store, engine, validate, bus, cacheSvc, metrics, logr)
	announcements := service.NewAnnouncementService(store, engine, validate, bus, cacheSvc, logr)
	rosters := service.NewRosterService(store, logr)

	checks := map[string]func() error{}
	if redisRepo != nil {
		checks["redis"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx).Err()
		}
	}

	h := router.Handlers{
		Session:      handler.NewSessionHandler(sessions, views),
		View:         handler.NewViewHandler(views),
		Course:       handler.NewCourseHandler(courses, rosters),
		Announcement: handler.NewAnnouncementHandler(announcements),
		Assistant:    handler.NewAssistantHandler(chat, syllabus),
		Activity:     handler.NewActivityHandler(activity),
		Metrics:      handler.NewMetricsHandler(metrics, checks),
	}
	r := router.Setup(cfg, h, sessions, metrics, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "cache", cacheEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}

	queue.Stop()
	if err := bus.Close(); err != nil {
		logr.Warn("close event bus", zap.Error(err))
	}
	activity.Wait()
	if redisRepo != nil {
		if err := redisRepo.Close(); err != nil {
			logr.Warn("close redis", zap.Error(err))
		}
	}
}
