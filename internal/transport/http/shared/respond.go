// Package shared holds the response helpers every HTTP handler uses, so the
// JSON error envelope stays identical across endpoints.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "scaflow/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:          http.StatusBadRequest,
	dErrors.CodeFormatError:         http.StatusBadRequest,
	dErrors.CodeDecodeEmpty:         http.StatusBadRequest,
	dErrors.CodeDecodeCorrupt:       http.StatusBadRequest,
	dErrors.CodeDecodeTypeMismatch:  http.StatusBadRequest,
	dErrors.CodeServiceNotSupported: http.StatusBadRequest,
	dErrors.CodeMethodUnknown:       http.StatusBadRequest,
	dErrors.CodeMissingCredentials:  http.StatusUnauthorized,
	dErrors.CodeCredentialsInvalid:  http.StatusUnauthorized,
	dErrors.CodeScaInvalid:          http.StatusConflict,
	dErrors.CodeUnknownAccount:      http.StatusNotFound,
	dErrors.CodeAttemptFailure:      http.StatusBadRequest,
	dErrors.CodeTechnical:           http.StatusBadGateway,
	dErrors.CodeInternal:            http.StatusInternalServerError,
}

// HTTPStatus maps a domain error code to its response status. Unknown codes
// fall back to 500.
func HTTPStatus(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError renders a domain error as the standard JSON envelope. Internal
// and technical failures omit the message so backend details never leak to
// the caller.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := ""
	var domainErr *dErrors.DomainError
	if errors.As(err, &domainErr) && code != dErrors.CodeInternal && code != dErrors.CodeTechnical {
		message = domainErr.Message
	}
	WriteJSON(w, HTTPStatus(code), errorEnvelope{
		Error:   string(code),
		Message: message,
	})
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
