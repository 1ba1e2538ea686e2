package types

import (
	"net/http"

	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

const internalMessage = "internal server error"

// FromAppError converts err into the envelope error. Messages of codes that
// do not map to a client error are replaced so internals never leak.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	code := appErr.CodeOf(err)
	if HTTPStatus(err) == http.StatusInternalServerError {
		return &APIError{Code: string(appErr.CodeInternal), Message: internalMessage}
	}
	msg := appErr.MessageOf(err)
	if msg == "" {
		msg = http.StatusText(HTTPStatus(err))
	}
	return &APIError{Code: string(code), Message: msg}
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict, appErr.CodeAlreadyExists:
		return http.StatusConflict
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	case appErr.CodeDeadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
