package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/poolcraft/backoffice/internal/api/middleware"
	"github.com/poolcraft/backoffice/internal/api/types"
	"github.com/poolcraft/backoffice/internal/api/validators"
	"github.com/poolcraft/backoffice/internal/services"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, types.APIResponse{Success: true, Data: data, Meta: meta(r)})
}

// writeError derives the status from the error code. Internal failures are
// logged here and reported to the client without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := types.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, types.APIResponse{Success: false, Error: types.FromAppError(err), Meta: meta(r)})
}

func meta(r *http.Request) *types.Meta {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		return &types.Meta{RequestID: id}
	}
	return nil
}

// readBody returns the request body, which must be a JSON object.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, appErr.Invalid("request body too large")
		}
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid request body")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, appErr.Invalid("request body must be a JSON object")
	}
	return body, nil
}

// readJSON decodes the body into dst without struct validation. It is used
// for document entries, which the services validate once ids are assigned.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json")
	}
	return nil
}

// decode reads a JSON object body into dst and runs struct validation.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := readJSON(w, r, dst); err != nil {
		return err
	}
	if err := validators.New().Struct(dst); err != nil {
		return appErr.Invalid(validators.Describe(err))
	}
	return nil
}

func idParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, appErr.Newf(appErr.CodeInvalid, "invalid %s", name)
	}
	return uint(v), nil
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// principalID is only called behind the auth middleware.
func principalID(r *http.Request) uint {
	if p := middleware.GetPrincipal(r.Context()); p != nil {
		return p.ID
	}
	return 0
}

func principal(r *http.Request) *services.Principal {
	return middleware.GetPrincipal(r.Context())
}

// rawDoc treats an absent or null JSON document as not provided.
func rawDoc(raw json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty string is no date.
func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, appErr.Newf(appErr.CodeInvalid, "%s must be a date (YYYY-MM-DD)", field)
}
