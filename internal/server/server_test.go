package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/config"
	"choreboard/internal/storage/memory"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>choreboard</html>"), 0644))
	return config.Config{
		Port:          "0",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		TokenTTL:      time.Hour,
		StoreBackend:  config.BackendMemory,
		StaticDir:     staticDir,
		CORSOrigins:   []string{"*"},
	}
}

func TestHandlerRoutes(t *testing.T) {
	ts := httptest.NewServer(Handler(testConfig(t), memory.New()))
	defer ts.Close()

	// Static index page.
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Health endpoint.
	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Metrics endpoint.
	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// CORS preflight short-circuits.
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/chores", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	resp.Body.Close()
}
