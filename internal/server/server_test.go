package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/cache"
	"github.com/emberapp/ember-backend/internal/config"
	"github.com/emberapp/ember-backend/internal/db"
	"github.com/emberapp/ember-backend/internal/server"
	"github.com/emberapp/ember-backend/internal/service/account"
	"github.com/emberapp/ember-backend/internal/service/chat"
	"github.com/emberapp/ember-backend/internal/service/match"
)

// setupRouter wires the full HTTP stack against an in-memory DB and a
// miniredis, mirroring the production assembly in cmd/server.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(cfg, dbase, cache.NewRedisCache(cfg), logger)

	return server.NewRouter(appCtx,
		account.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerAndLogin(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "password123", "full_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["access_token"].(string)
}

func TestHealthz(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["database"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/me", "/matches", "/likes/count"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, router, http.MethodGet, "/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestMatchAndMessagingFlow walks the core product loop: two users like each
// other, get matched exactly once, exchange a message, and a third user is
// locked out of their conversation.
func TestMatchAndMessagingFlow(t *testing.T) {
	router := setupRouter(t)

	tokenA := registerAndLogin(t, router, "a@test.com")
	tokenB := registerAndLogin(t, router, "b@test.com")
	tokenC := registerAndLogin(t, router, "c@test.com")

	rec := doJSON(t, router, http.MethodGet, "/me", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	idB := decode(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/me", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	idA := decode(t, rec)["id"].(string)

	// one-way like: no match yet
	rec = doJSON(t, router, http.MethodPost, "/likes", tokenA, gin.H{"target_user_id": idB})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, false, body["matched"])
	assert.NotContains(t, body, "match")

	// B sees one pending like
	rec = doJSON(t, router, http.MethodGet, "/likes/count", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	// reciprocal like closes the pair
	rec = doJSON(t, router, http.MethodPost, "/likes", tokenB, gin.H{"target_user_id": idA})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decode(t, rec)
	require.Equal(t, true, body["matched"])
	matchObj := body["match"].(map[string]any)
	matchID := matchObj["id"].(string)
	assert.Equal(t, idA, matchObj["other"].(map[string]any)["id"])

	// both directories show exactly the one match
	for _, token := range []string{tokenA, tokenB} {
		rec = doJSON(t, router, http.MethodGet, "/matches", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		items := decode(t, rec)["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, matchID, items[0].(map[string]any)["id"])
	}

	// conversation between the participants
	rec = doJSON(t, router, http.MethodPost, "/matches/"+matchID+"/messages", tokenA, gin.H{"text": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/matches/"+matchID+"/messages", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	msg := items[0].(map[string]any)
	assert.Equal(t, "hi", msg["text"])
	assert.Equal(t, idA, msg["sender_id"])

	// an outsider can neither read nor write it
	rec = doJSON(t, router, http.MethodGet, "/matches/"+matchID+"/messages", tokenC, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/matches/"+matchID+"/messages", tokenC, gin.H{"text": "hello?"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// unknown match reads 404, not 403
	rec = doJSON(t, router, http.MethodGet, "/matches/999/messages", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDuplicateRegistrationConflict(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"email": "dup@test.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"email": "dup@test.com", "password": "password456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
