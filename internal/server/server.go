// Package server exposes the agent over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"tipline/internal/agent"
	"tipline/internal/llm"
)

const maxBodyBytes = 1 << 20

// Server handles the HTTP surface of the agent.
type Server struct {
	dispatcher *agent.Dispatcher
	log        *zap.Logger
}

// New builds the HTTP server around a dispatcher.
func New(d *agent.Dispatcher, log *zap.Logger) *Server {
	return &Server{dispatcher: d, log: log}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/agent/turn", s.handleTurn)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type turnRequest struct {
	Message      string           `json:"message"`
	History      []historyMessage `json:"history"`
	LocalDate    string           `json:"localDate"`
	LocalTime    string           `json:"localTime"`
	TimeZoneName string           `json:"timeZoneName"`
}

type historyMessage struct {
	Text       string `json:"text"`
	IsFromUser bool   `json:"isFromUser"`
}

type turnResponse struct {
	Success           bool       `json:"success"`
	Reply             string     `json:"reply,omitempty"`
	FunctionsExecuted int        `json:"functionsExecuted"`
	Error             string     `json:"error,omitempty"`
	DebugInfo         *debugInfo `json:"debugInfo,omitempty"`
}

type debugInfo struct {
	Functions []string `json:"functions"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	accountID, authOK := s.authenticate(r)
	if !authOK {
		writeJSON(w, http.StatusUnauthorized, turnResponse{Error: "missing or invalid bearer token"})
		return
	}

	var req turnRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, turnResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, turnResponse{Error: "message is required"})
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, h := range req.History {
		history = append(history, llm.Message{FromUser: h.IsFromUser, Text: h.Text})
	}

	result, err := s.dispatcher.Handle(r.Context(), agent.TurnRequest{
		AccountID: accountID,
		Message:   req.Message,
		History:   history,
		LocalDate: req.LocalDate,
		LocalTime: req.LocalTime,
		TimeZone:  req.TimeZoneName,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.Error("turn failed",
			zap.String("account", accountID),
			zap.Error(err))
		writeJSON(w, http.StatusBadGateway, turnResponse{Error: "the assistant is unavailable right now, please try again"})
		return
	}

	s.log.Info("turn completed",
		zap.String("account", accountID),
		zap.Int("functions", len(result.FunctionsExecuted)),
		zap.Duration("elapsed", time.Since(start)))

	resp := turnResponse{
		Success:           true,
		Reply:             result.Reply,
		FunctionsExecuted: len(result.FunctionsExecuted),
	}
	if len(result.FunctionsExecuted) > 0 {
		resp.DebugInfo = &debugInfo{Functions: result.FunctionsExecuted}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authenticate extracts the account id from the bearer token's subject claim.
// Signature verification happens at the auth gateway in front of this
// service; this layer only needs the identity the gateway already vouched
// for.
func (s *Server) authenticate(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", false
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
