package backend

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	dErrors "scaflow/pkg/domain-errors"
)

// attemptFailedCode is the structured code the backend puts in a 4xx body when
// a single verification attempt failed but the SCA session is still alive.
const attemptFailedCode = "SCA_VALIDATION_ATTEMPT_FAILED"

// translateHTTP maps a backend HTTP failure onto the authorisation error
// taxonomy. The mapping is deliberately conservative: unknown statuses and
// codes never land in a retry-eligible category.
func translateHTTP(status int, body []byte) error {
	code := gjson.GetBytes(body, "errorCode").String()
	if code == "" {
		code = gjson.GetBytes(body, "devMessage").String()
	}
	message := gjson.GetBytes(body, "message").String()
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", status)
	}

	switch status {
	case http.StatusInternalServerError:
		return dErrors.New(dErrors.CodeTechnical, message)
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		if code == attemptFailedCode {
			return dErrors.New(dErrors.CodeAttemptFailure, message)
		}
		return dErrors.New(dErrors.CodeFormatError, message)
	case http.StatusNotFound:
		return dErrors.New(dErrors.CodeCredentialsInvalid, message)
	case http.StatusNotImplemented:
		return dErrors.New(dErrors.CodeMethodUnknown, message)
	default:
		return dErrors.New(dErrors.CodeInternal, message)
	}
}
