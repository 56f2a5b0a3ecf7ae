package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tipline/internal/agent"
	"tipline/internal/llm"
	"tipline/internal/store"
)

func newTestServer(t *testing.T, client llm.Client) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(New(agent.New(client, st, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func bearerToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func postTurn(t *testing.T, srv *httptest.Server, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/agent/turn", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestTurnRequiresBearerToken(t *testing.T) {
	srv := newTestServer(t, &llm.MockClient{})

	resp, body := postTurn(t, srv, "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, _ = postTurn(t, srv, "garbage-token", `{"message":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTurnRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t, &llm.MockClient{})
	token := bearerToken(t, "acct-1")

	resp, _ := postTurn(t, srv, token, `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postTurn(t, srv, token, `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTurnHappyPath(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return &llm.Response{Text: "Hello! Ready to log some tips?"}, nil
		},
	}
	srv := newTestServer(t, mock)

	resp, body := postTurn(t, srv, bearerToken(t, "acct-1"),
		`{"message":"hey","localDate":"2026-01-09","history":[{"text":"earlier","isFromUser":true}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Hello! Ready to log some tips?", body["reply"])
	// The count is always present, even when no operations ran.
	assert.Equal(t, float64(0), body["functionsExecuted"])
	assert.Nil(t, body["debugInfo"])
}

func TestTurnReportsExecutedFunctions(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return &llm.Response{ToolCalls: []llm.ToolCall{{
				Name: "set_weekly_goal",
				Args: map[string]any{"amount": 500.0},
			}}}, nil
		},
		NarrateFunc: func(context.Context, string, []llm.Message, string, []llm.ToolOutcome) (string, error) {
			return "Weekly goal set to $500!", nil
		},
	}
	srv := newTestServer(t, mock)

	resp, body := postTurn(t, srv, bearerToken(t, "acct-1"), `{"message":"goal 500","localDate":"2026-01-09"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(1), body["functionsExecuted"])

	debug, castOK := body["debugInfo"].(map[string]any)
	require.True(t, castOK)
	assert.Equal(t, []any{"set_weekly_goal"}, debug["functions"])
}

func TestTurnModelFailureMapsToBadGateway(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return nil, assert.AnError
		},
	}
	srv := newTestServer(t, mock)

	resp, body := postTurn(t, srv, bearerToken(t, "acct-1"), `{"message":"hi"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &llm.MockClient{})

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
