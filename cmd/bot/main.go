package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordcards/internal/config"
	"wordcards/internal/conversation"
	"wordcards/internal/dispatch"
	"wordcards/internal/handler"
	"wordcards/internal/middleware"
	"wordcards/internal/repository/postgres"
	"wordcards/internal/service"
	"wordcards/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"
)

const (
	dbConnectAttempts = 30
	dbRetryDelay      = 2 * time.Second
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("Bot terminated", zap.Error(err))
	}
	logger.Info("Bot stopped gracefully")
}

func run(logger *zap.Logger) error {
	logger.Info("Starting Wordcards Bot")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	// Storage
	userRepo := postgres.NewUserRepo(db)
	wordRepo := postgres.NewWordRepo(db)

	// Domain
	userService := service.NewUserService(userRepo)
	wordService := service.NewWordService(wordRepo)
	statsService := service.NewStatsService(wordRepo, logger)
	quizService := service.NewQuizService(nil)

	sessions := session.NewStore()
	machine := conversation.NewMachine(userService, wordService, statsService, quizService, sessions, logger)

	// Updates are read one at a time and fanned out per user by the queue,
	// so each user's messages are handled in arrival order.
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: cfg.PollTimeout},
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			logger.Error("Unhandled bot error", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	queue := dispatch.NewQueue(logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	h := handler.NewHandler(bot, machine, queue, cfg.HandlerTimeout, logger)
	h.RegisterHandlers(bot,
		middleware.RecoverMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.RateLimitMiddleware(limiter, logger),
	)

	logger.Info("Handlers registered")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Bot started successfully", zap.String("username", bot.Me.Username))
		bot.Start()
		return nil
	})

	g.Go(func() error {
		session.RunSweeper(gctx, cfg.Session.SweepInterval, cfg.Session.TTL, logger, sessions, limiter)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, stopping bot...")
		bot.Stop()
		queue.Close()
		return nil
	})

	return g.Wait()
}

// connectDatabase opens the pool and waits until PostgreSQL answers
func connectDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return db, nil
		}

		logger.Warn("Database not ready",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}

	db.Close()
	return nil, fmt.Errorf("connect to database after %d attempts: %w", dbConnectAttempts, err)
}

// runMigrations brings the schema up to date
func runMigrations(db *sql.DB, source string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}
	return nil
}
