package types

import (
	"errors"
	"net/http"

	appErr "github.com/hackmap/engine/pkg/errors"
)

// FromAppError converts err into the wire error. Foreign errors are reported
// as internal without leaking their text.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if errors.As(err, &e) {
		return &APIError{Code: string(e.Code), Message: e.Message, Details: e.Meta}
	}
	return &APIError{Code: string(appErr.CodeInternal), Message: "internal error"}
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(err error) int {
	switch code := appErr.CodeOf(err); {
	case code == appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.IsConflict(err):
		return http.StatusConflict
	case code == appErr.CodeForbidden:
		return http.StatusForbidden
	case code == appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.IsPrecondition(err):
		return http.StatusUnprocessableEntity
	case code == appErr.CodeInvalid, code == appErr.CodeInvalidInviteCode:
		return http.StatusBadRequest
	case code == appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
