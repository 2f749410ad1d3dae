package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/api"
	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/llm"
	"github.com/joestump/cuecard/internal/store"
	"github.com/joestump/cuecard/internal/testutil"
)

// testEnv holds the router and stores needed for API integration tests.
type testEnv struct {
	Router http.Handler
	Events *store.EventStore
}

// newTestEnv wires the API router to an in-memory SQLite database. gen may be
// nil to simulate a server without a model credential.
func newTestEnv(t *testing.T, gen llm.Generator) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	events := store.NewEventStore(db)

	var opts []coach.Option
	if gen != nil {
		opts = append(opts, coach.WithGenerator(gen))
	}
	svc, err := coach.New(config.LLM{Provider: "gemini"}, zap.NewNop(), opts...)
	if err != nil {
		t.Fatalf("coach.New: %v", err)
	}

	return &testEnv{
		Router: api.NewAPIRouter(api.Deps{Coach: svc, Events: events, Log: zap.NewNop()}),
		Events: events,
	}
}

func staticGenerator(reply string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	})
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}
