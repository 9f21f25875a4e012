// Package statecodec converts AuthorizationState to and from the opaque blob
// the caller persists between requests. The encoding is self-describing: an
// embedded object-type tag selects the concrete shape on decode, so a caller
// never needs external schema knowledge to resume a flow.
package statecodec

import (
	"bytes"
	"encoding/json"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

// Object-type tags embedded in the serialized form. One per operation type;
// decode matches exhaustively and rejects anything else as corrupt.
const (
	tagPayment       = "sca/payment"
	tagConsent       = "sca/consent"
	tagCancelPayment = "sca/cancel-payment"
)

type envelope struct {
	ObjectType string                    `json:"object_type"`
	State      *models.AuthorizationState `json:"state"`
}

func tagFor(t models.OperationType) (string, bool) {
	switch t {
	case models.OperationPayment:
		return tagPayment, true
	case models.OperationConsent:
		return tagConsent, true
	case models.OperationCancelPayment:
		return tagCancelPayment, true
	}
	return "", false
}

func typeFor(tag string) (models.OperationType, bool) {
	switch tag {
	case tagPayment:
		return models.OperationPayment, true
	case tagConsent:
		return models.OperationConsent, true
	case tagCancelPayment:
		return models.OperationCancelPayment, true
	}
	return "", false
}

// Encode serializes the state with its embedded object-type tag. Pure; the
// input is never mutated.
func Encode(state *models.AuthorizationState) ([]byte, error) {
	if state == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "state must not be nil")
	}
	tag, ok := tagFor(state.OperationType)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown operation type "+string(state.OperationType))
	}
	buf, err := json.Marshal(envelope{ObjectType: tag, State: state})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode authorization state")
	}
	return buf, nil
}

// Decode deserializes a blob produced by Encode. Empty input yields
// CodeDecodeEmpty, the caller's signal to take the bootstrap path instead of
// resuming. With checkCredentials true, a decoded state without a bearer token
// is CodeMissingCredentials: every call but the very first requires one.
func Decode(blob []byte, checkCredentials bool) (*models.AuthorizationState, error) {
	return decode(blob, "", checkCredentials)
}

// DecodeTyped is Decode with an expected operation type. A mismatch against
// the embedded tag is CodeDecodeTypeMismatch, never a silent reinterpretation.
func DecodeTyped(blob []byte, expected models.OperationType, checkCredentials bool) (*models.AuthorizationState, error) {
	if _, ok := tagFor(expected); !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown expected operation type "+string(expected))
	}
	return decode(blob, expected, checkCredentials)
}

func decode(blob []byte, expected models.OperationType, checkCredentials bool) (*models.AuthorizationState, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, dErrors.New(dErrors.CodeDecodeEmpty, "empty authorization state")
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecodeCorrupt, "malformed authorization state")
	}
	if env.State == nil {
		return nil, dErrors.New(dErrors.CodeDecodeCorrupt, "authorization state missing payload")
	}

	decodedType, ok := typeFor(env.ObjectType)
	if !ok {
		return nil, dErrors.New(dErrors.CodeDecodeCorrupt, "unknown object type tag "+env.ObjectType)
	}
	if expected != "" && decodedType != expected {
		return nil, dErrors.New(dErrors.CodeDecodeTypeMismatch,
			"expected "+string(expected)+" state, got "+env.ObjectType)
	}

	state := env.State
	// The tag is authoritative; a hand-tampered operation_type field loses.
	state.OperationType = decodedType

	if checkCredentials && state.BearerToken.Empty() {
		return nil, dErrors.New(dErrors.CodeMissingCredentials, "authorization state carries no bearer token")
	}
	return state, nil
}
