//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"support-chat-api/internal/config"
	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/inference"
	"support-chat-api/internal/infrastructure/logger"
	"support-chat-api/internal/interfaces/httpserver"
)

var chatSet = wire.NewSet(
	provideStore,
	inference.NewCompletionClient,
	wire.Bind(new(chat.CompletionClient), new(*inference.CompletionClient)),
	chat.NewService,
)

// BuildApplication assembles the chat API with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		chatSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}
