package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm/logger"

	"github.com/UkralStul/post-scheduler/internal/api"
	"github.com/UkralStul/post-scheduler/internal/config"
	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/logging"
	"github.com/UkralStul/post-scheduler/internal/service"
	"github.com/UkralStul/post-scheduler/internal/storage"
	"github.com/UkralStul/post-scheduler/internal/storage/inmemory"
	"github.com/UkralStul/post-scheduler/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	storageType := flag.String("storage", "", "Storage type (in-memory or postgres); overrides STORAGE")
	flag.Parse()

	// .env не обязателен
	_ = godotenv.Load()

	// Флаг важнее STORAGE из окружения и config.yml
	if *storageType != "" {
		_ = os.Setenv("STORAGE", *storageType)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	clock := clockwork.NewRealClock()

	log.Info("starting server",
		slog.String("storage", cfg.Storage),
		slog.String("env", cfg.Env))

	var store storage.Storage
	switch cfg.Storage {
	case config.StoragePostgres:
		pg, err := postgres.New(cfg.DatabaseURL, gormLogLevel(cfg.LogLevel))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer func() {
			if err := pg.Close(); err != nil {
				log.Warn("failed to close database", slog.Any("error", err))
			}
		}()
		store = pg
	default:
		store = inmemory.NewWithClock(clock)
	}

	svc := service.NewPostGroupService(store, clock, log)

	// Заполним данными для тестов
	if cfg.Storage != config.StoragePostgres && cfg.SeedDemoData {
		if err := fillWithMockData(context.Background(), svc, clock, log); err != nil {
			return err
		}
	}
	router := api.NewRouter(api.NewHandler(svc, log), store)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	if logging.ParseLevel(level) <= slog.LevelDebug {
		return logger.Info
	}
	return logger.Warn
}

// fillWithMockData создает несколько групп во всех статусах через обычный сценарий
// создания и одобрения.
func fillWithMockData(ctx context.Context, svc *service.PostGroupService, clock clockwork.Clock, log *slog.Logger) error {
	now := clock.Now().UTC()

	samples := []struct {
		content   string
		category  domain.Category
		scheduled time.Time
		approve   bool
	}{
		{"Five habits of productive teams", domain.CategoryEducation, now.Add(48 * time.Hour), false},
		{"Meet the people behind our product", domain.CategoryCommunity, now.Add(72 * time.Hour), false},
		{"Quarterly industry report is out", domain.CategoryAuthority, now.Add(24 * time.Hour), true},
		{"Monday motivation", domain.CategoryInspiration, now.Add(-24 * time.Hour), true},
		{"Office pet of the month", domain.CategoryEntertainment, now.Add(-2 * time.Hour), true},
	}

	for _, sample := range samples {
		g, err := svc.Create(ctx, domain.CreatePostGroupInput{
			Content:       sample.content,
			MediaURLs:     []string{"https://picsum.photos/seed/post/800/600"},
			Category:      sample.category,
			ScheduledDate: sample.scheduled,
			Posts: []domain.CreatePostInput{
				{Platform: domain.PlatformFacebook, Caption: sample.content},
				{Platform: domain.PlatformInstagram, Caption: sample.content + " #weekly"},
				{Platform: domain.PlatformLinkedIn, Caption: sample.content},
			},
		})
		if err != nil {
			return fmt.Errorf("fillWithMockData: failed to create post group: %w", err)
		}
		if !sample.approve {
			continue
		}
		if _, err := svc.Approve(ctx, g.ID); err != nil {
			return fmt.Errorf("fillWithMockData: failed to approve post group %s: %w", g.ID, err)
		}
	}

	log.Info("mock data filled", slog.Int("post_groups", len(samples)))
	return nil
}
