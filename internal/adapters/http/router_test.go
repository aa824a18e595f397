package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/RomanRosson/Byteful/internal/adapters/db/sqlite"
	"github.com/RomanRosson/Byteful/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, sqlite.RunMigrations(context.Background(), db))

	service := application.NewService(sqlite.NewRepository(db))
	_, err = service.BootstrapAdmin(context.Background(), "admin", "1234")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(service, logger)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateAndGetItem(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/items", map[string]any{
		"type":        "link",
		"title":       "Go docs",
		"content":     "https://go.dev/doc",
		"description": "language reference",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[itemResponse](t, rec)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	rec = doRequest(t, h, http.MethodGet, "/api/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[itemResponse](t, rec)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Content, fetched.Content)
	assert.Equal(t, created.Description, fetched.Description)
}

func TestCreateItemRejectsBlankTitle(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/items", map[string]any{
		"type":    "link",
		"title":   "   ",
		"content": "https://go.dev",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Contains(t, body, "error")
}

func TestGetItemNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/items/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/items", map[string]any{
		"type": "note", "title": "scratch", "content": "text",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[itemResponse](t, rec)

	rec = doRequest(t, h, http.MethodDelete, "/api/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])

	rec = doRequest(t, h, http.MethodGet, "/api/items/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "item %d gone", created.ID)
}

func TestCreateTypeConflictsCaseInsensitively(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/types", map[string]any{"name": "Link"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/types", map[string]any{"name": "link"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRenameTypeCascades(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/types", map[string]any{"name": "Script"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[typeResponse](t, rec)

	rec = doRequest(t, h, http.MethodPost, "/api/items", map[string]any{
		"type": "Script", "title": "deploy", "content": "run.sh",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/api/types/1", map[string]any{"name": "Tool"})
	require.Equal(t, http.StatusOK, rec.Code)
	renamed := decodeBody[typeResponse](t, rec)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "Tool", renamed.Name)

	rec = doRequest(t, h, http.MethodGet, "/api/items/type/Tool", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decodeBody[[]itemResponse](t, rec)
	require.Len(t, moved, 1)
	assert.Equal(t, "deploy", moved[0].Title)

	rec = doRequest(t, h, http.MethodGet, "/api/items/type/Script", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]itemResponse](t, rec))
}

func TestDeleteTypeInUseAnswersBadRequest(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/types", map[string]any{"name": "link"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/items", map[string]any{
		"type": "link", "title": "docs", "content": "https://go.dev",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[itemResponse](t, rec)

	rec = doRequest(t, h, http.MethodDelete, "/api/types/1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/items/1", nil)
	require.Equal(t, http.StatusOK, rec.Code, "clearing item %d", created.ID)

	rec = doRequest(t, h, http.MethodDelete, "/api/types/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTypeNamesRouteWinsOverItemID(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/types", map[string]any{"name": "link"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/items/types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	names := decodeBody[[]string](t, rec)
	assert.Equal(t, []string{"link"}, names)
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin", "pin": "1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["authenticated"])

	rec = doRequest(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin", "pin": "0000",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body = decodeBody[map[string]any](t, rec)
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, "Invalid credentials", body["error"])
}
