package types

import (
	"errors"
	"net/http"

	appErr "github.com/vlat-exam/api/pkg/errors"
)

// MsgInternal is the body message of every unhandled failure.
const MsgInternal = "Internal server error"

var statusByCode = map[appErr.Code]int{
	appErr.CodeInvalid:      http.StatusBadRequest,
	appErr.CodeNotFound:     http.StatusNotFound,
	appErr.CodeConflict:     http.StatusConflict,
	appErr.CodeUnauthorized: http.StatusUnauthorized,
	appErr.CodeInternal:     http.StatusInternalServerError,
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code appErr.Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FromAppError builds the failure body for err. Errors that are not
// AppErrors are reported as internal server errors.
func FromAppError(err error) (int, APIResponse) {
	code := appErr.CodeOf(err)
	if code == appErr.CodeUnknown {
		return http.StatusInternalServerError, APIResponse{Success: false, Message: MsgInternal}
	}
	resp := APIResponse{Success: false, Message: messageOf(err)}
	if detail, ok := appErr.MetaString(err, appErr.MetaDetail); ok {
		resp.Error = detail
	}
	return StatusFor(code), resp
}

// Internal is the fallback body for panics and other unhandled failures.
// detail is only included when verbose is set.
func Internal(detail string, verbose bool) APIResponse {
	resp := APIResponse{Success: false, Message: MsgInternal}
	if verbose {
		resp.Error = detail
	}
	return resp
}

func messageOf(err error) string {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return MsgInternal
}
