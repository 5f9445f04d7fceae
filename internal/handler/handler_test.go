package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pouriamv/art-market-api/internal/bootstrap"
	"github.com/pouriamv/art-market-api/internal/config"
	"github.com/pouriamv/art-market-api/internal/entity"
	"github.com/pouriamv/art-market-api/internal/server"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedRoles(db))
	require.NoError(t, bootstrap.SeedCurrencies(db))

	cfg := &config.Config{
		Port:          "8080",
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		ResetTokenTTL: time.Hour,
		RateLimitAuth: time.Second,
	}

	srv := server.New(cfg, db, nil)
	return &testEnv{router: srv.Engine(), db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndLogin creates a user through the public endpoints and returns
// its access token.
func (e *testEnv) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := decodeBody(t, w)["access_token"].(string)
	require.True(t, ok, "login response must carry access_token")
	return token
}

// promoteToArtist flips the user's role. Role checks read the database on
// every request, so an already issued token picks the new role up.
func (e *testEnv) promoteToArtist(t *testing.T, email string) {
	t.Helper()
	err := e.db.Model(&entity.User{}).
		Where("email = ?", email).
		Update("role_id", entity.RoleArtistID).Error
	require.NoError(t, err)
}

func (e *testEnv) newArtist(t *testing.T, name, email string) string {
	t.Helper()
	token := e.registerAndLogin(t, name, email, "password123")
	e.promoteToArtist(t, email)
	return token
}

func (e *testEnv) createArtwork(t *testing.T, token, title string, tags []string) uint {
	t.Helper()

	w := e.request(t, http.MethodPost, "/artist/artwork", token, gin.H{
		"title":         title,
		"price":         150.0,
		"currency_id":   1,
		"stock":         3,
		"description":   "test piece",
		"category_name": "Painting",
		"tag_names":     tags,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, ok := decodeBody(t, w)["artwork_id"].(float64)
	require.True(t, ok, "create response must carry artwork_id")
	return uint(id)
}

func (e *testEnv) addComment(t *testing.T, token string, artworkID uint, content string) uint {
	t.Helper()

	w := e.request(t, http.MethodPost, fmt.Sprintf("/store/artworks/%d/comments", artworkID), token,
		gin.H{"content": content})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["comment_id"].(float64))
}
