// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mealmate/internal/app"
)

const (
	serverName    = "mealmate"
	serverVersion = "1.0.0"
)

type Config struct {
	Host      string
	Port      int
	ExportDir string
}

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type MealMateServer struct {
	info       protocol.Implementation
	httpServer *http.Server
	controller *app.Controller
	tools      map[string]toolHandler
	config     *Config
	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	closers    []func() error
}

type Option func(*MealMateServer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *MealMateServer) { s.logger = logger }
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *MealMateServer) { s.gatherer = g }
}

// WithCloser registers a resource released by Stop, such as the storage.
func WithCloser(closer func() error) Option {
	return func(s *MealMateServer) { s.closers = append(s.closers, closer) }
}

// NewMealMateServer wires the tool routes. Tool calls arrive as MCP
// CallToolRequest envelopes over plain HTTP.
func NewMealMateServer(cfg *Config, controller *app.Controller, opts ...Option) (*MealMateServer, error) {
	mealServer := &MealMateServer{
		info:       protocol.Implementation{Name: serverName, Version: serverVersion},
		controller: controller,
		config:     cfg,
		logger:     slog.Default(),
		gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(mealServer)
	}
	mealServer.logger = mealServer.logger.With("component", "server")

	mealServer.registerTools()

	mux := http.NewServeMux()
	mux.HandleFunc("/", mealServer.handleHTTP)
	mux.Handle("/metrics", promhttp.HandlerFor(mealServer.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", mealServer.handleHealth)

	mealServer.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return mealServer, nil
}

// Handler exposes the routes without binding a listener.
func (s *MealMateServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *MealMateServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r.Context(), &request)
	if err != nil {
		s.writeError(w, request.Name, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", "tool", request.Name, "error", err)
	}
}

func (s *MealMateServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"server": s.info,
		"tools":  s.ToolNames(),
	}); err != nil {
		s.logger.Error("failed to encode health", "error", err)
	}
}

func (s *MealMateServer) writeError(w http.ResponseWriter, tool string, err error) {
	var alert *app.Alert
	switch {
	case errors.As(err, &alert):
		s.logger.Info("tool raised alert", "tool", tool, "alert", alert.Message, "error", alert.Err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if encErr := json.NewEncoder(w).Encode(map[string]string{"alert": alert.Message}); encErr != nil {
			s.logger.Error("failed to encode alert", "tool", tool, "error", encErr)
		}
	case errors.Is(err, errInvalidParams):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("tool failed", "tool", tool, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *MealMateServer) Start(ctx context.Context) error {
	s.logger.Info("starting mealmate server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MealMateServer) Stop(ctx context.Context) error {
	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *MealMateServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
