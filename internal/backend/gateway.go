// Package backend talks to the remote core-banking authorisation service. The
// engine depends only on the Gateway interface; the HTTP client and the
// sandbox implementation live behind it.
package backend

import (
	"context"

	"scaflow/internal/sca/models"
)

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks Gateway

// StartScaRequest opens (or idempotently re-opens) an SCA process for a
// business object. Re-invocation with the same AuthorisationID is safe.
type StartScaRequest struct {
	OperationID     string               `json:"operation_id"`
	OperationType   models.OperationType `json:"operation_type"`
	AuthorisationID string               `json:"authorisation_id,omitempty"`
}

// ScaResponse is the backend's view of an authorisation after any SCA call.
// BearerToken may be omitted when unchanged; callers carry the previous one
// forward.
type ScaResponse struct {
	AuthorisationID       string                `json:"authorisation_id,omitempty"`
	ScaStatus             models.ScaStatus      `json:"sca_status"`
	BearerToken           *models.BearerToken   `json:"bearer_token,omitempty"`
	ScaMethods            []models.ScaMethod    `json:"sca_methods,omitempty"`
	ChallengeData         *models.ChallengeData `json:"challenge_data,omitempty"`
	MultilevelScaRequired bool                  `json:"multilevel_sca_required,omitempty"`
	PartiallyAuthorised   bool                  `json:"partially_authorised,omitempty"`
	OperationObjectID     string                `json:"operation_object_id,omitempty"`
	TransactionStatus     string                `json:"transaction_status,omitempty"`
}

// Gateway is the contract the engine holds against the core-banking service.
// Every call is a single synchronous request/response; the bearer token is an
// explicit parameter, never ambient state, and authenticated calls fail fast
// when it is absent.
type Gateway interface {
	// Login exchanges PSU credentials for a bearer token. Rejected
	// credentials surface as CodeCredentialsInvalid.
	Login(ctx context.Context, psuID, password string) (*models.BearerToken, error)

	// StartSca begins or resumes the SCA process for a business object.
	StartSca(ctx context.Context, token *models.BearerToken, req StartScaRequest) (*ScaResponse, error)

	// ListMethods returns the SCA methods available for an authorisation.
	ListMethods(ctx context.Context, token *models.BearerToken, authorisationID string) ([]models.ScaMethod, error)

	// SelectMethod picks a method and generates its challenge.
	SelectMethod(ctx context.Context, token *models.BearerToken, operationID, authorisationID, methodID string) (*ScaResponse, error)

	// InitiateOperation submits the underlying business object (payment
	// submission, consent registration, cancellation request) once the PSU is
	// identified or the object is exempted.
	InitiateOperation(ctx context.Context, token *models.BearerToken, operationType models.OperationType, operationID string) (*ScaResponse, error)

	// ValidateCode submits a TAN. A wrong code with the session still alive
	// comes back as CodeAttemptFailure, not a generic failure.
	ValidateCode(ctx context.Context, token *models.BearerToken, authorisationID, code string) (*ScaResponse, error)

	// GetSca fetches the current authorisation status.
	GetSca(ctx context.Context, token *models.BearerToken, authorisationID string) (*ScaResponse, error)

	// ExecuteOperation triggers execution of a fully authorised business
	// object and returns its terminal transaction status.
	ExecuteOperation(ctx context.Context, token *models.BearerToken, operationType models.OperationType, operationID string) (string, error)

	// MultilevelScaRequired reports whether the referenced accounts demand
	// more than one authorising PSU.
	MultilevelScaRequired(ctx context.Context, psuID string, ibans []string) (bool, error)
}
