package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"support-chat-api/internal/config"
	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/logger"
	"support-chat-api/internal/infrastructure/memstore"
	"support-chat-api/internal/interfaces/httpserver/responses"
)

type scriptedCompleter struct {
	reply string
	err   error
}

func (s *scriptedCompleter) Complete(_ context.Context, _ chat.Prompt) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestServer(completer chat.CompletionClient) (*HttpServer, *memstore.ConversationMemoryStore) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ServiceName:     "chat-api",
		Environment:     "test",
		HTTPPort:        8080,
		ShutdownTimeout: time.Second,
	}
	store := memstore.NewConversationMemoryStore()
	service := chat.NewService(store, completer, logger.GetLogger())
	return New(cfg, logger.GetLogger(), service), store
}

func postMessage(t *testing.T, server *HttpServer, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Engine().ServeHTTP(rec, req)
	return rec
}

func TestPostMessage_NewSessionThenHistory(t *testing.T) {
	server, _ := newTestServer(&scriptedCompleter{reply: "Standard shipping takes 3-5 business days."})

	rec := postMessage(t, server, map[string]any{"message": "What are your shipping options?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply responses.ChatMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.NotEmpty(t, reply.SessionID)
	require.Equal(t, "Standard shipping takes 3-5 business days.", reply.Reply)

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/history/"+reply.SessionID, nil)
	histRec := httptest.NewRecorder()
	server.Engine().ServeHTTP(histRec, req)
	require.Equal(t, http.StatusOK, histRec.Code)

	var history responses.ChatHistoryResponse
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &history))
	require.Len(t, history.Messages, 2)
	require.Equal(t, "user", history.Messages[0].Sender)
	require.Equal(t, "What are your shipping options?", history.Messages[0].Text)
	require.Equal(t, "ai", history.Messages[1].Sender)
	require.NotEmpty(t, history.Messages[1].Text)
}

func TestPostMessage_ReusesSuppliedSessionID(t *testing.T) {
	server, store := newTestServer(&scriptedCompleter{reply: "ok"})

	first := postMessage(t, server, map[string]any{"message": "one", "sessionId": "ticket-7"})
	require.Equal(t, http.StatusOK, first.Code)
	second := postMessage(t, server, map[string]any{"message": "two", "sessionId": "ticket-7"})
	require.Equal(t, http.StatusOK, second.Code)

	history, err := store.History(context.Background(), "ticket-7")
	require.NoError(t, err)
	require.Len(t, history, 4)
}

func TestPostMessage_EmptyMessageRejected(t *testing.T) {
	server, _ := newTestServer(&scriptedCompleter{reply: "ok"})

	for _, body := range []map[string]any{
		{"message": ""},
		{"message": "   "},
		{},
	} {
		rec := postMessage(t, server, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
	}
}

func TestPostMessage_ModelFailureReturnsGenericError(t *testing.T) {
	server, store := newTestServer(&scriptedCompleter{err: errors.New("connection refused: 10.0.0.7:8443")})

	rec := postMessage(t, server, map[string]any{"message": "hello", "sessionId": "sess-dead"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.NotContains(t, errResp.Error, "connection refused")
	require.NotContains(t, errResp.Message, "10.0.0.7")

	// The user turn stays persisted despite the failure.
	history, err := store.History(context.Background(), "sess-dead")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, chat.SenderUser, history[0].Sender)
}

func TestErrorResponsesCarryRequestID(t *testing.T) {
	server, _ := newTestServer(&scriptedCompleter{reply: "ok"})

	payload := []byte(`{"message":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/message", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-regress-42")
	rec := httptest.NewRecorder()
	server.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "req-regress-42", rec.Header().Get("X-Request-Id"))

	var errResp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.Equal(t, "req-regress-42", errResp.RequestID)
}

func TestGetHistory_UnknownSessionIs404(t *testing.T) {
	server, _ := newTestServer(&scriptedCompleter{reply: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/history/never-created", nil)
	rec := httptest.NewRecorder()
	server.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ServiceName:     "chat-api",
		Environment:     "test",
		HTTPPort:        0,
		ShutdownTimeout: time.Second,
	}
	service := chat.NewService(memstore.NewConversationMemoryStore(), &scriptedCompleter{reply: "ok"}, logger.GetLogger())
	server := New(cfg, logger.GetLogger(), service)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(&scriptedCompleter{reply: "ok"})

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Engine().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}
