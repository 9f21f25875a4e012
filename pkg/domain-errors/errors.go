package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Services attach codes when crossing the
// engine boundary; transport maps them onto HTTP responses. Backend transport
// errors never leave the core uncoded.
type Code string

const (
	// CodeFormatError marks malformed input or an unclassified backend
	// 400-class response. Local and non-retryable.
	CodeFormatError Code = "format_error"
	// CodeCredentialsInvalid marks a terminal rejection of PSU credentials or
	// TAN. The authorisation attempt must restart from STARTED.
	CodeCredentialsInvalid Code = "credentials_invalid"
	// CodeAttemptFailure marks a single failed verification attempt with the
	// authorisation session still alive. Callers decrement a remaining-attempts
	// counter and may retry immediately.
	CodeAttemptFailure Code = "attempt_failure"
	// CodeServiceNotSupported marks a requested approach that cannot be
	// serviced for the chosen method.
	CodeServiceNotSupported Code = "service_not_supported"
	// CodeMethodUnknown marks an authentication method the backend does not
	// recognise.
	CodeMethodUnknown Code = "method_unknown"
	// CodeScaInvalid marks a step invoked inconsistently with the current SCA
	// status.
	CodeScaInvalid Code = "sca_invalid"
	// CodeTechnical marks a backend internal error, not attributable to the PSU.
	CodeTechnical Code = "technical_failure"
	// CodeUnknownAccount marks a failed multilevel lookup for the referenced
	// accounts. Never silently defaults to single-level.
	CodeUnknownAccount Code = "unknown_account"

	// Opaque-state decode failures.
	CodeDecodeEmpty        Code = "decode_empty"
	CodeDecodeCorrupt      Code = "decode_corrupt"
	CodeDecodeTypeMismatch Code = "decode_type_mismatch"
	CodeMissingCredentials Code = "decode_missing_credentials"

	CodeBadRequest Code = "bad_request"
	CodeInternal   Code = "internal"
)

// DomainError carries a code and message and optionally wraps a cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *DomainError
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		de = nil
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error is uncoded.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsDecodeError reports whether err is any of the opaque-state decode failures.
func IsDecodeError(err error) bool {
	switch CodeOf(err) {
	case CodeDecodeEmpty, CodeDecodeCorrupt, CodeDecodeTypeMismatch, CodeMissingCredentials:
		return true
	}
	return false
}
