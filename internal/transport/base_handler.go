package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/pkg/logger"
)

// ErrorResponse is the uniform error payload exposed to callers.
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// HandleError translates a domain error into the uniform error payload. It is
// the single boundary between typed domain errors and transport status codes.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.NewInternalError("internal server error", err)
	}

	lg := h.Logger
	if username := errors.UsernameFromContext(r.Context()); username != "" {
		lg = lg.With("username", username)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		lg.Error("request failed", "status", appErr.StatusCode, "path", r.URL.Path, "error", err)
	} else {
		lg.Warn("request rejected", "status", appErr.StatusCode, "path", r.URL.Path, "message", appErr.Message)
	}

	writeErrorPayload(w, r, appErr)
}

// WriteDomainError is the package-level variant for middleware that has no
// BaseHandler.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.NewInternalError("internal server error", err)
	}
	writeErrorPayload(w, r, appErr)
}

func writeErrorPayload(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	resp := ErrorResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    appErr.StatusCode,
		Error:     http.StatusText(appErr.StatusCode),
		Message:   appErr.Message,
		Path:      r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
