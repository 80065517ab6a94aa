package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"refashion/internal/app"
	"refashion/internal/events"
	"refashion/internal/server"
	"refashion/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter initializes the router over a started session backed by an in-memory store.
func SetupTestRouter(t *testing.T) *gin.Engine {
	router, _ := SetupSharedRouter(t, storage.NewMemoryStore(), events.NewMemoryBus())
	return router
}

// SetupSharedRouter starts a session on the given store and bus, as a second browser tab would.
func SetupSharedRouter(t *testing.T, store storage.KVStore, bus events.Bus) (*gin.Engine, *app.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session := app.NewSession(app.Deps{Store: store, Bus: bus})
	require.NoError(t, session.Start(context.Background()))
	t.Cleanup(func() { _ = session.Close() })

	return server.SetupRouter(session), session
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and returns the envelope data
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if data, ok := resp["data"].(map[string]any); ok && w.Code < 300 {
			resp = data
		}
	}

	return resp, w
}
