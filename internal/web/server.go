// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"llm-sanitizer/internal/formatters"
	"llm-sanitizer/internal/observability"
	"llm-sanitizer/internal/profiles"
	"llm-sanitizer/internal/sanitizer"
	"llm-sanitizer/internal/version"

	// Import formatters to register them
	_ "llm-sanitizer/internal/formatters/json"
	_ "llm-sanitizer/internal/formatters/text"
	_ "llm-sanitizer/internal/formatters/yaml"
)

const (
	// maxRequestBytes bounds the body of sanitize and restore requests
	maxRequestBytes = 10 << 20

	// maxSessions bounds how many numeric sessions the server remembers
	maxSessions = 1000

	// portAttempts is how many consecutive ports Start tries
	portAttempts = 10
)

// WebServer serves the sanitizer over a JSON HTTP API. Numeric sessions are
// kept in memory, keyed by session id, until evicted.
type WebServer struct {
	port    string
	server  *http.Server
	mux     *http.ServeMux
	store   *profiles.Store
	engine  *sanitizer.Engine
	numbers sanitizer.NumberSanitizeOptions

	mu           sync.RWMutex
	sessions     map[string]sanitizer.SanitizationSession
	sessionOrder []string
}

var _ observability.Observable = (*WebServer)(nil)

// SanitizeRequest is the body of POST /api/sanitize
type SanitizeRequest struct {
	Text          string                           `json:"text"`
	ProfileID     string                           `json:"profileId,omitempty"`
	NumberOptions *sanitizer.NumberSanitizeOptions `json:"numberOptions,omitempty"`
}

// SanitizeResponse is the result of POST /api/sanitize
type SanitizeResponse struct {
	Success            bool   `json:"success"`
	Result             string `json:"result,omitempty"`
	TermReplacements   int    `json:"termReplacements"`
	NumberReplacements int    `json:"numberReplacements"`
	SessionID          string `json:"sessionId,omitempty"`
	Error              string `json:"error,omitempty"`
}

// RestoreRequest is the body of POST /api/restore
type RestoreRequest struct {
	Text      string `json:"text"`
	ProfileID string `json:"profileId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// RestoreResponse is the result of POST /api/restore
type RestoreResponse struct {
	Success      bool   `json:"success"`
	Result       string `json:"result,omitempty"`
	Replacements int    `json:"replacements"`
	Error        string `json:"error,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewWebServer creates a new web server instance. numbers are the options
// used when a sanitize request does not carry its own.
func NewWebServer(port string, store *profiles.Store, engine *sanitizer.Engine, numbers sanitizer.NumberSanitizeOptions) *WebServer {
	if engine == nil {
		engine = sanitizer.New()
	}
	ws := &WebServer{
		port:     port,
		mux:      http.NewServeMux(),
		store:    store,
		engine:   engine,
		numbers:  numbers,
		sessions: make(map[string]sanitizer.SanitizationSession),
	}
	ws.setupRoutes()
	return ws
}

// Handler returns the HTTP handler serving every route
func (ws *WebServer) Handler() http.Handler {
	return ws.mux
}

// Start serves until ctx is cancelled. When the configured port is busy the
// next ports are tried in turn.
func (ws *WebServer) Start(ctx context.Context, announce io.Writer) error {
	base, err := strconv.Atoi(ws.port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", ws.port, err)
	}

	var listener net.Listener
	var lastError error
	for i := 0; i < portAttempts; i++ {
		currentPort := strconv.Itoa(base + i)
		listener, lastError = net.Listen("tcp", ":"+currentPort)
		if lastError == nil {
			ws.server = ws.createSecureServer(currentPort)
			break
		}
		if i == 0 && announce != nil {
			fmt.Fprintf(announce, "Port %s is not available, trying alternative ports...\n", currentPort)
		}
	}
	if listener == nil {
		return fmt.Errorf("could not find an available port in range %d-%d: %w\n"+
			"Troubleshooting: try a specific port with --port <number>", base, base+portAttempts-1, lastError)
	}

	if announce != nil {
		fmt.Fprintf(announce, "LLM Sanitizer API listening on http://localhost%s\n", ws.server.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return ws.server.Shutdown(shutdownCtx)
	}
}

// Stop stops the web server
func (ws *WebServer) Stop() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

// GetComponentName returns the component name for observability
func (ws *WebServer) GetComponentName() string {
	return "web"
}

// setupRoutes configures all HTTP route handlers
func (ws *WebServer) setupRoutes() {
	ws.mux.HandleFunc("/health", ws.handleHealth)
	ws.mux.HandleFunc("/api/sanitize", ws.handleSanitize)
	ws.mux.HandleFunc("/api/restore", ws.handleRestore)
	ws.mux.HandleFunc("/api/profiles", ws.handleProfiles)
	ws.mux.HandleFunc("/api/formats", ws.handleFormats)
}

// createSecureServer creates an HTTP server with security timeouts
func (ws *WebServer) createSecureServer(port string) *http.Server {
	return &http.Server{
		Addr:    ":" + port,
		Handler: ws.mux,
		// Timeout for reading request headers (prevents slow header attacks)
		ReadHeaderTimeout: 15 * time.Second,
		// Timeout for reading entire request
		ReadTimeout: 30 * time.Second,
		// Timeout for writing response
		WriteTimeout: 30 * time.Second,
		// Timeout for idle connections
		IdleTimeout: 60 * time.Second,
	}
}

// handleHealth returns service status and build information
func (ws *WebServer) handleHealth(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	buildInfo := version.Current()
	healthData := map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "llm-sanitizer",
		"version":    buildInfo.Version,
		"build_info": buildInfo,
	}
	ws.sendJSON(responseWriter, http.StatusOK, healthData)
}

// handleSanitize replaces terms and numbers and remembers the session
func (ws *WebServer) handleSanitize(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SanitizeRequest
	if err := ws.decode(responseWriter, request, &req); err != nil {
		ws.sendError(responseWriter, err.Error())
		return
	}

	profile, status, err := ws.resolveProfile(req.ProfileID)
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, err.Error(), status)
		return
	}

	opts := ws.numbers
	if req.NumberOptions != nil {
		opts = *req.NumberOptions
	}

	result := ws.engine.Sanitize(req.Text, profile.Terms, opts)
	if !result.Session.IsEmpty() {
		ws.rememberSession(result.Session)
	}

	if format := request.URL.Query().Get("format"); format != "" && format != "json" {
		ws.sendReport(responseWriter, format, formatters.NewSanitizeReport(profile.Name, result))
		return
	}

	ws.sendJSON(responseWriter, http.StatusOK, SanitizeResponse{
		Success:            true,
		Result:             result.Result,
		TermReplacements:   result.TermReplacements,
		NumberReplacements: result.NumberReplacements,
		SessionID:          result.Session.ID,
	})
}

// handleRestore reverses term placeholders and, given a session id, the
// numeric placeholders of that session
func (ws *WebServer) handleRestore(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RestoreRequest
	if err := ws.decode(responseWriter, request, &req); err != nil {
		ws.sendError(responseWriter, err.Error())
		return
	}

	profile, status, err := ws.resolveProfile(req.ProfileID)
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, err.Error(), status)
		return
	}

	var session *sanitizer.SanitizationSession
	if req.SessionID != "" {
		found, ok := ws.lookupSession(req.SessionID)
		if !ok {
			ws.sendErrorWithStatus(responseWriter, fmt.Sprintf("session %q not found", req.SessionID), http.StatusNotFound)
			return
		}
		session = &found
	}

	result, count := ws.engine.Restore(req.Text, profile.Terms, session)

	if format := request.URL.Query().Get("format"); format != "" && format != "json" {
		ws.sendReport(responseWriter, format, formatters.NewRestoreReport(profile.Name, req.Text, result, count))
		return
	}

	ws.sendJSON(responseWriter, http.StatusOK, RestoreResponse{
		Success:      true,
		Result:       result,
		Replacements: count,
	})
}

// handleProfiles returns the vault
func (ws *WebServer) handleProfiles(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vault, err := ws.store.Load()
	if err != nil {
		ws.sendErrorWithStatus(responseWriter, err.Error(), http.StatusInternalServerError)
		return
	}
	ws.sendJSON(responseWriter, http.StatusOK, vault)
}

// handleFormats lists the report formats accepted by the format parameter
func (ws *WebServer) handleFormats(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		ws.sendErrorWithStatus(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ws.sendJSON(responseWriter, http.StatusOK, formatters.GetSupportedFormats())
}

// resolveProfile loads the vault and picks the requested or active profile
func (ws *WebServer) resolveProfile(id string) (*profiles.Profile, int, error) {
	vault, err := ws.store.Load()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	profile, err := vault.Resolve(id)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	return profile, http.StatusOK, nil
}

// rememberSession stores session, evicting the oldest once full
func (ws *WebServer) rememberSession(session sanitizer.SanitizationSession) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if _, exists := ws.sessions[session.ID]; !exists {
		ws.sessionOrder = append(ws.sessionOrder, session.ID)
	}
	ws.sessions[session.ID] = session

	for len(ws.sessionOrder) > maxSessions {
		oldest := ws.sessionOrder[0]
		ws.sessionOrder = ws.sessionOrder[1:]
		delete(ws.sessions, oldest)
	}
}

func (ws *WebServer) lookupSession(id string) (sanitizer.SanitizationSession, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	session, ok := ws.sessions[id]
	return session, ok
}

// decode reads a size-limited JSON body into v
func (ws *WebServer) decode(responseWriter http.ResponseWriter, request *http.Request, v interface{}) error {
	body := http.MaxBytesReader(responseWriter, request.Body, maxRequestBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("Invalid request body: %v", err)
	}
	return nil
}

// sendReport renders report with a registered formatter
func (ws *WebServer) sendReport(responseWriter http.ResponseWriter, format string, report formatters.Report) {
	content, mimeType, filename, err := formatters.ExportForWeb(format, report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		ws.sendError(responseWriter, err.Error())
		return
	}
	responseWriter.Header().Set("Content-Type", mimeType)
	responseWriter.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	responseWriter.WriteHeader(http.StatusOK)
	io.WriteString(responseWriter, content)
}

func (ws *WebServer) sendJSON(responseWriter http.ResponseWriter, statusCode int, v interface{}) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)
	json.NewEncoder(responseWriter).Encode(v)
}

// sendError sends a 400 error response
func (ws *WebServer) sendError(responseWriter http.ResponseWriter, message string) {
	ws.sendErrorWithStatus(responseWriter, message, http.StatusBadRequest)
}

// sendErrorWithStatus sends an error response with a specific HTTP status code
func (ws *WebServer) sendErrorWithStatus(responseWriter http.ResponseWriter, message string, statusCode int) {
	ws.sendJSON(responseWriter, statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
