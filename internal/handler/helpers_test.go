package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qs-lzh/fyyur-trivia/config"
	"github.com/qs-lzh/fyyur-trivia/internal/app"
	"github.com/qs-lzh/fyyur-trivia/internal/cache"
	"github.com/qs-lzh/fyyur-trivia/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestApp(t *testing.T) *app.App {
	t.Helper()
	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "handler.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateFyyur(db))
	require.NoError(t, database.MigrateTrivia(db))

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache(mr.Addr())
	require.NoError(t, err)

	cfg := &config.Config{
		SessionCookie: "fyyur_session",
		CORSOrigins:   []string{"*"},
	}
	a, err := app.New(cfg, db, redisCache, zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func seedCategories(t *testing.T, a *app.App) {
	t.Helper()
	_, err := database.SeedTriviaCategories(context.Background(), a.DB)
	require.NoError(t, err)
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func doForm(r http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
