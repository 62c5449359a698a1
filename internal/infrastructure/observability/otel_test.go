package observability

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"support-chat-api/internal/config"
	"support-chat-api/internal/infrastructure/logger"
)

func TestSetupInstallsGlobalProviders(t *testing.T) {
	cfg := &config.Config{ServiceName: "chat-api", Environment: "test"}

	shutdown, err := Setup(context.Background(), cfg, logger.GetLogger())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, shutdown(context.Background()))
	}()

	// An incoming traceparent must survive extraction through the globally
	// registered propagator.
	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(header))
	spanCtx := trace.SpanContextFromContext(ctx)
	require.True(t, spanCtx.IsValid())
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spanCtx.TraceID().String())
	require.Equal(t, "00f067aa0ba902b7", spanCtx.SpanID().String())

	require.NotNil(t, otel.GetMeterProvider())
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("api-key=secret, team = obs ,malformed,=empty")
	require.Equal(t, map[string]string{
		"api-key": "secret",
		"team":    "obs",
	}, headers)
}
