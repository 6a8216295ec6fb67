package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/date"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

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
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes {"error": message} with the given status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", message)
	} else {
		h.Logger.Debug("http error", "status", status, "message", message)
	}
	h.WriteJSON(w, status, apperrors.Response{Error: message})
}

// HandleError maps an AppError to its status; any other error is an
// unclassified failure and goes out as a 500 carrying the raw error text.
func (h *BaseHandler) HandleError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.IsAppError(err); ok && appErr.StatusCode != 0 {
		status, body := appErr.ToHTTPResponse()
		if status >= http.StatusInternalServerError && appErr.Cause != nil {
			body.Error = appErr.Cause.Error()
		}
		h.WriteError(w, status, body.Error)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}

// DecodeJSON strictly decodes the request body into dst. Unknown keys,
// malformed JSON, malformed dates and trailing data are all 400s.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperrors.ErrInvalidRequestBody
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.ErrInvalidRequestBody.WithCause(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return apperrors.ErrInvalidRequestBody.WithMessage("request body is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return apperrors.ErrInvalidRequestBody.WithMessage("request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) *apperrors.AppError {
	var (
		dateErr   *date.ParseError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &dateErr):
		return apperrors.NewValidationError(dateErr.Error(), apperrors.ErrCodeInvalidDate)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "request body"
		}
		return apperrors.ErrInvalidRequestBody.WithMessage(fmt.Sprintf("%s has an invalid type", field))
	case errors.As(err, &syntaxErr):
		return apperrors.ErrInvalidRequestBody.WithMessage("request body is not valid JSON")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return apperrors.ErrInvalidRequestBody.WithMessage("unknown field " + field)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.ErrInvalidRequestBody.WithMessage("request body is not valid JSON")
	default:
		if appErr, ok := apperrors.IsAppError(err); ok {
			return appErr
		}
		return apperrors.ErrInvalidRequestBody.WithMessage(err.Error())
	}
}

// PathID parses a positive integer route parameter.
func (h *BaseHandler) PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID.WithMessage(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}
