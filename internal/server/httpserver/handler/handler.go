package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/core/service"
	"github.com/plainsight/plainsight-go/internal/imageio"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
)

// DefaultMaxUploadBytes bounds a request body when Config leaves it unset.
const DefaultMaxUploadBytes = 32 << 20

// multipartMemory is how much of a form is kept in memory before spilling
// to temporary files.
const multipartMemory = 8 << 20

// Config holds the collaborators of Handler.
type Config struct {
	Service *service.SecretService
	Logger  logger.Logger

	// MaxUploadBytes bounds the request body.
	MaxUploadBytes int64

	// DefaultFormat is used by conceal when the form has no format field.
	DefaultFormat imageio.Format

	// Version is reported by the health endpoints.
	Version string

	// Ready reports whether the server accepts work. Nil means always.
	Ready func() bool
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	svc       *service.SecretService
	logger    logger.Logger
	maxUpload int64
	format    imageio.Format
	version   string
	ready     func() bool
	mux       *http.ServeMux
}

// New creates a new Handler.
func New(cfg Config) *Handler {
	h := &Handler{
		svc:       cfg.Service,
		logger:    cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
		format:    cfg.DefaultFormat,
		version:   cfg.Version,
		ready:     cfg.Ready,
		mux:       http.NewServeMux(),
	}
	if h.svc == nil {
		h.svc = service.NewSecretService(nil)
	}
	if h.logger == nil {
		h.logger = logger.Nop()
	}
	if h.maxUpload <= 0 {
		h.maxUpload = DefaultMaxUploadBytes
	}
	if h.format == "" {
		h.format = imageio.FormatPNG
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	h.mux.HandleFunc("POST /v1/conceal", h.handleConceal)
	h.mux.HandleFunc("POST /v1/reveal", h.handleReveal)
	h.mux.HandleFunc("POST /v1/inspect", h.handleInspect)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// handleServiceError converts service errors to HTTP responses. Causes
// are logged but never sent to the client.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.DomainError
	if errors.As(err, &de) {
		status := ErrorCodeToHTTPStatus(de.Code)
		if status >= http.StatusInternalServerError {
			logger.L(r.Context()).Error("request failed", "code", de.Code, "error", err)
		}
		var details any
		if de.Details != "" {
			details = de.Details
		}
		h.writeError(w, r, status, de.Code, de.Message, details)
		return
	}

	if errors.Is(err, r.Context().Err()) && r.Context().Err() != nil {
		logger.L(r.Context()).Debug("request cancelled", "error", err)
		return
	}

	logger.L(r.Context()).Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, domain.ErrInternal.Message, nil)
}

// ErrorCodeToHTTPStatus maps an error code to its HTTP status. The first
// three digits of the numeric part of a code are the status; anything
// unparsable is a 500.
func ErrorCodeToHTTPStatus(code string) int {
	i := strings.LastIndexByte(code, '-')
	if i < 0 || len(code)-i-1 < 3 {
		return http.StatusInternalServerError
	}
	status, err := strconv.Atoi(code[i+1 : i+4])
	if err != nil || status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}
