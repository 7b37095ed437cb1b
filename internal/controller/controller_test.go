package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/internal/repository/memory"
	"knowledge-assistant-be/internal/service"
	"knowledge-assistant-be/pkg/rag/executor"
	"knowledge-assistant-be/pkg/rag/intent"
	"knowledge-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type stubExecutor struct {
	calls int
}

func (s *stubExecutor) Execute(_ context.Context, req executor.Request) *executor.Result {
	s.calls++
	return &executor.Result{
		Response: store.StructuredResponse{
			Summary:               "Nao encontrei documentacao",
			Sources:               []store.SourceCitation{},
			ConfidenceLevel:       store.ConfidenceLow,
			RequiresHumanFallback: true,
			FallbackReason:        "no documentation available",
		},
		RetrievedDocs:  []store.RetrievedDocument{},
		ConversationID: "conv-" + req.Context.SessionID,
		Intent:         intent.General,
	}
}

type testServer struct {
	app   *fiber.App
	exec  *stubExecutor
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st := memory.NewStore()
	exec := &stubExecutor{}

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewAssistantController(service.NewAssistantService(exec, st), testSecret).RegisterRoutes(api)
	NewKnowledgeController(service.NewKnowledgeService(st, nil, nil, logger.NewNopLogger()), testSecret).RegisterRoutes(api)

	return &testServer{app: app, exec: exec, store: st}
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    "u-1",
		"role":       role,
		"company_id": "c-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (s *testServer) do(t *testing.T, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestAssistantController_Query(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		role     string
		body     interface{}
		wantCode int
	}{
		{"no token", "", dto.QueryRequest{Query: "q", SessionId: "s"}, fiber.StatusUnauthorized},
		{"missing session", constant.RoleEmployee, dto.QueryRequest{Query: "q"}, fiber.StatusBadRequest},
		{"bad source type", constant.RoleEmployee, dto.QueryRequest{Query: "q", SessionId: "s", Filters: &dto.QueryFilters{SourceTypes: []string{"secret"}}}, fiber.StatusBadRequest},
		{"threshold out of range", constant.RoleEmployee, dto.QueryRequest{Query: "q", SessionId: "s", SimilarityThreshold: 1.5}, fiber.StatusBadRequest},
		{"ok", constant.RoleEmployee, dto.QueryRequest{Query: "qual o prazo?", SessionId: "s-9"}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := srv.do(t, "POST", "/api/assistant/v1/query", tt.role, tt.body)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
	assert.Equal(t, 1, srv.exec.calls)

	_, body := srv.do(t, "POST", "/api/assistant/v1/query", constant.RoleEmployee, dto.QueryRequest{Query: "qual o prazo?", SessionId: "s-9"})
	var parsed serverutils.BaseResponse[dto.QueryResponse]
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.True(t, parsed.Success)
	assert.Equal(t, "conv-s-9", parsed.Data.ConversationId)
	assert.Equal(t, store.ConfidenceLow, parsed.Data.Response.ConfidenceLevel)
	assert.True(t, parsed.Data.Response.RequiresHumanFallback)
}

func TestAssistantController_Query_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/assistant/v1/query", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t, constant.RoleEmployee))
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssistantController_Tickets_RequiresAdmin(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := srv.do(t, "GET", "/api/assistant/v1/tickets", constant.RoleEmployee, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, "GET", "/api/assistant/v1/tickets?status=bogus", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := srv.do(t, "GET", "/api/assistant/v1/tickets?status=open&limit=5", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed serverutils.BaseResponse[dto.ListTicketsResponse]
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, 5, parsed.Data.Limit)
	assert.Empty(t, parsed.Data.Tickets)
}

func TestAssistantController_AuditLogs(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := srv.do(t, "GET", "/api/assistant/v1/audit", constant.RoleEmployee, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, "GET", "/api/assistant/v1/audit?limit=500", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := srv.do(t, "GET", "/api/assistant/v1/audit?sensitive_only=true", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed serverutils.BaseResponse[dto.ListAuditLogsResponse]
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, 20, parsed.Data.Limit)
	assert.Empty(t, parsed.Data.Entries)
}

func TestAssistantController_SessionHistory(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, "GET", "/api/assistant/v1/sessions/s-1/history", constant.RoleEmployee, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed serverutils.BaseResponse[dto.SessionHistoryResponse]
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "s-1", parsed.Data.SessionId)
}

func TestKnowledgeController(t *testing.T) {
	srv := newTestServer(t)

	doc := dto.IngestDocumentRequest{Title: "Manual", SourceType: store.SourcePublic, Content: "Passo a passo"}

	resp, _ := srv.do(t, "POST", "/api/knowledge/v1/documents", constant.RoleEmployee, doc)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, "POST", "/api/knowledge/v1/documents", constant.RoleAdmin, dto.IngestDocumentRequest{Title: "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := srv.do(t, "POST", "/api/knowledge/v1/documents", constant.RoleAdmin, doc)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created serverutils.BaseResponse[dto.IngestDocumentResponse]
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEqual(t, uuid.Nil, created.Data.Id)

	resp, _ = srv.do(t, "PUT", "/api/knowledge/v1/documents/"+created.Data.Id.String()+"/deactivate", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = srv.do(t, "PUT", "/api/knowledge/v1/documents/"+uuid.NewString()+"/deactivate", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = srv.do(t, "PUT", "/api/knowledge/v1/documents/not-a-uuid/deactivate", constant.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
