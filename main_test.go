package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/services"
	"shopapi/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, overrides map[string]interface{}) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("TOKEN_SECRET", "test_token_secret")
	v.Set("STORAGE_ROOT", filepath.Join(t.TempDir(), "public"))
	for k, val := range overrides {
		v.Set(k, val)
	}
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	assets, publicDir, err := newAssetStore(cfg)
	require.NoError(t, err)
	app, err := buildApp(cfg, database.OpenTest(t), assets, publicDir, services.NopPublisher{}, zap.NewNop())
	require.NoError(t, err)
	return app
}

func TestServerHealthCheck(t *testing.T) {
	app := newTestApp(t, testConfig(t, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(bodyBytes), `"status":"healthy"`)
}

func TestUnauthenticatedAccess(t *testing.T) {
	app := newTestApp(t, testConfig(t, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Expected Unauthorized for /products without token")
}

func TestAPIPrefix(t *testing.T) {
	app := newTestApp(t, testConfig(t, map[string]interface{}{"API_PREFIX": "/api"}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewAssetStore(t *testing.T) {
	cfg := testConfig(t, nil)
	assets, publicDir, err := newAssetStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStore{}, assets)
	assert.Equal(t, cfg.StorageRoot, publicDir)

	cfg = testConfig(t, map[string]interface{}{
		"STORAGE_DRIVER": "s3",
		"S3_BUCKET":      "products",
		"S3_ENDPOINT":    "http://localhost:9000",
		"S3_ACCESS_KEY":  "minio",
		"S3_SECRET_KEY":  "minio123",
	})
	assets, publicDir, err = newAssetStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.S3Store{}, assets)
	assert.Empty(t, publicDir)
}
