package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "github.com/hackmap/engine/internal/api/middleware"
	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/api/validators"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
)

// maxBodyBytes caps request bodies read by decode.
const maxBodyBytes = 1 << 20

var errForbiddenOther = appErr.New(appErr.CodeForbidden, "cannot act on behalf of another user")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, types.APIResponse{
		Success: true,
		Data:    data,
		Meta:    &types.Meta{RequestID: mw.GetRequestID(r.Context())},
	})
}

func respondList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    &types.Meta{RequestID: mw.GetRequestID(r.Context()), Total: int64(len(items))},
	})
}

// writeError maps err to its status and envelope. Internal failures are
// logged and reported without their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := types.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", mw.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, types.APIResponse{
		Success: false,
		Error:   types.FromAppError(err),
		Meta:    &types.Meta{RequestID: mw.GetRequestID(r.Context())},
	})
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErr.New(appErr.CodeInvalid, "request body is required")
		}
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json")
	}
	if err := validators.New().Struct(dst); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "validation failed").WithMeta("fields", validators.Describe(err))
	}
	return nil
}

func parseID(s, name string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, appErr.New(appErr.CodeInvalid, "invalid "+name)
	}
	return uint(id), nil
}

func pathID(r *http.Request, param string) (uint, error) {
	return parseID(chi.URLParam(r, param), param)
}

// queryID returns nil when the parameter is absent.
func queryID(r *http.Request, key string) (*uint, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func requireQueryID(r *http.Request, key string) (uint, error) {
	id, err := queryID(r, key)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, appErr.New(appErr.CodeInvalid, key+" is required")
	}
	return *id, nil
}

// currentUser is only called behind mw.Auth, which guarantees the id.
func currentUser(r *http.Request) uint {
	id, _ := mw.GetUserID(r.Context())
	return id
}

// optionalUser returns nil for anonymous requests.
func optionalUser(r *http.Request) *uint {
	if id, ok := mw.GetUserID(r.Context()); ok {
		return &id
	}
	return nil
}

// selfOrCaller resolves an optional user id against the caller; any other
// user is forbidden.
func selfOrCaller(r *http.Request, requested uint) (uint, error) {
	caller := currentUser(r)
	if requested != 0 && requested != caller {
		return 0, errForbiddenOther
	}
	return caller, nil
}
