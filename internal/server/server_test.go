package server

import (
	"io"
	"net/http/httptest"
	"testing"

	"knowledge-assistant-be/internal/bootstrap"
	"knowledge-assistant-be/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInMemoryServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			LogFilePath:        dir + "/app.log",
			AuditLogFilePath:   dir + "/audit.log",
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Rag: config.RagConfig{
			MaxDocuments:        5,
			SimilarityThreshold: 0.7,
			HighConfidence:      0.85,
			MediumConfidence:    0.7,
			MinDocsForHigh:      2,
			CandidatePool:       50,
			PermissionPolicy:    "allow_all",
		},
	}
	container := bootstrap.NewContainer(nil, cfg)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newInMemoryServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServer_AssistantRoutesAreProtected(t *testing.T) {
	srv := newInMemoryServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("POST", "/api/assistant/v1/query", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestServer_ForgedTokenRejectedWithoutSecret(t *testing.T) {
	srv := newInMemoryServer(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "attacker",
		"role":    "admin",
	}).SignedString([]byte(""))
	require.NoError(t, err)

	for _, path := range []string{"/api/assistant/v1/tickets", "/api/assistant/v1/audit"} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := srv.GetApp().Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode, path)
	}
}
