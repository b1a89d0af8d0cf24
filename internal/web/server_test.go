package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"ExamAssistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return NewServer(config.WebConfig{}, store, zap.NewNop().Sugar()), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestScreenshotRoundTrip(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/screenshot", map[string]string{
		"image_base64": base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
		"analysis":     "solved",
		"timestamp":    "2025-01-01T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, router, http.MethodGet, "/api/results/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var latest Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, created.ID, latest.ID)
	assert.Equal(t, ResultScreenshot, latest.Type)
	assert.Equal(t, "solved", latest.Analysis)

	w = doJSON(t, router, http.MethodGet, "/api/results/"+created.ID+"/image", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte{1, 2, 3}, w.Body.Bytes())

	require.Len(t, store.List(), 1)
}

func TestScreenshotBadBase64IsClientError(t *testing.T) {
	srv, store := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/api/screenshot", map[string]string{
		"image_base64": "not-base64!!!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.List())
}

func TestScreenshotStorageFailureIsServerError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	srv := NewServer(config.WebConfig{}, store, zap.NewNop().Sugar())

	// Ломаем каталог картинок: декодирование проходит, запись — нет
	require.NoError(t, os.RemoveAll(store.ImagePath("")))

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/screenshot", map[string]string{
		"image_base64": base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.List())
}

func TestClipboardValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	// text обязателен
	w := doJSON(t, router, http.MethodPost, "/api/clipboard", map[string]string{"analysis": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/clipboard", map[string]string{"text": "from clipboard"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLatestWhenEmpty(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/api/results/latest", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	r, err := store.AddClipboard("x", "", "")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodDelete, "/api/results/"+r.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.List())

	w = doJSON(t, router, http.MethodDelete, "/api/results/"+r.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientPushesClipboard(t *testing.T) {
	var got map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clipboard", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	c := &Client{baseURL: backend.URL, client: backend.Client(), logger: zap.NewNop().Sugar()}
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.PushClipboard("hello", "analysis", at)

	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "analysis", got["analysis"])
	assert.Equal(t, "2025-01-01T10:00:00Z", got["timestamp"])
}

func TestClientRewritesWildcardHost(t *testing.T) {
	c := NewClient(config.WebConfig{Host: "0.0.0.0", Port: 8000}, zap.NewNop().Sugar())
	assert.Equal(t, "http://localhost:8000", c.baseURL)
}
