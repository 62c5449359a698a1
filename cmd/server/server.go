package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"support-chat-api/internal/config"
	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/database"
	"support-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"support-chat-api/internal/infrastructure/inference"
	"support-chat-api/internal/infrastructure/logger"
	"support-chat-api/internal/infrastructure/memstore"
	"support-chat-api/internal/infrastructure/observability"
	"support-chat-api/internal/interfaces/httpserver"

	// Register table schemas for automigration.
	_ "support-chat-api/internal/infrastructure/database/dbschema"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	store, err := provideStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize conversation store")
	}

	completer := inference.NewCompletionClient(cfg)
	chatService := chat.NewService(store, completer, log)

	httpServer := httpserver.New(cfg, log, chatService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// provideStore creates the conversation store backend based on configuration.
func provideStore(cfg *config.Config, log zerolog.Logger) (chat.ConversationStore, error) {
	if cfg.IsMemoryStore() {
		log.Info().Msg("using volatile in-memory conversation store")
		return memstore.NewConversationMemoryStore(), nil
	}

	db, err := database.Connect(database.Config{
		DSN:             cfg.DBPostgresqlDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return conversationrepo.NewConversationGormRepository(db), nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
