package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-api/internal/auth"
	"github.com/BuzzLyutic/todo-api/internal/config"
	"github.com/BuzzLyutic/todo-api/internal/handler"
	"github.com/BuzzLyutic/todo-api/internal/repo"
	"github.com/BuzzLyutic/todo-api/internal/repo/sqlite"
	"github.com/BuzzLyutic/todo-api/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	tasks, users, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	authService := service.NewAuthService(
		users,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL),
	)
	taskService := service.NewTaskService(tasks, logger)

	router := handler.NewRouter(
		handler.NewAuthHandler(authService, logger, cfg.CookieSecure),
		handler.NewTaskHandler(taskService, logger),
		authService,
		logger,
	)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped successfully!")
}

// openStore подключает выбранное хранилище и создает схему
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.TaskRepository, repo.UserRepository, func()) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open SQLite database", zap.Error(err))
		}
		if err := sqlite.Init(ctx, db); err != nil {
			logger.Fatal("Failed to init SQLite schema", zap.Error(err))
		}
		logger.Info("Using SQLite database", zap.String("path", cfg.SQLitePath))
		return sqlite.NewTaskRepo(db), sqlite.NewUserRepo(db), func() { db.Close() }
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err)) // дальнейшая работа теряет смысл
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	if err := repo.Migrate(ctx, pool); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	logger.Info("Successfully connected to the Database!")
	return repo.NewTaskRepo(pool), repo.NewUserRepo(pool), pool.Close
}
