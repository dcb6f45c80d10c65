package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/fixtures"
	"github.com/HerbHall/newsroom/internal/server"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/internal/testutil"
	"github.com/HerbHall/newsroom/pkg/catalog"
)

type handlerEnv struct {
	handler http.Handler
	store   *store.Store
	data    *fixtures.Dataset
	clock   *testutil.Clock
}

// setupHandlerEnv mounts the API on a full server over a seeded in-memory
// database.
func setupHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	s, d := testutil.NewSeededStore(t)
	clock := testutil.NewClock()
	db := s.DB()

	h := NewHandler(Repositories{
		Articles: services.NewSQLArticleRepository(db, services.WithClock(clock.Now)),
		Comments: services.NewSQLCommentRepository(db, services.WithClock(clock.Now)),
		Topics:   services.NewSQLTopicRepository(db),
		Users:    services.NewSQLUserRepository(db),
	}, catalog.NewCatalog(), zap.NewNop())

	srv := server.New(server.Options{}, zap.NewNop(), h)
	return &handlerEnv{handler: srv.Handler(), store: s, data: d, clock: clock}
}

// doRequest sends a request with an optional JSON body and returns the recorder.
func (env *handlerEnv) doRequest(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into a value of type T.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

// requireProblem asserts the status and message of an error response.
func requireProblem(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	p := decode[server.Problem](t, w)
	require.Equal(t, message, p.Message)
}
