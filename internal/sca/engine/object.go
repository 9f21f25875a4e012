package engine

import (
	"context"

	"scaflow/internal/backend"
	"scaflow/internal/sca/models"
)

// BusinessObject is the capability surface the engine needs from the thing
// being authorised. Payment, consent and payment-cancellation variants
// implement it; the engine itself never branches on the concrete kind beyond
// the operation type tag.
type BusinessObject interface {
	ID() string
	Type() models.OperationType
	// AccountAccess lists the accounts the object touches, for the
	// multilevel policy.
	AccountAccess() models.AccountAccess
	// StatusPrecludesAuthorisation reports whether the object's transaction
	// status rules out running SCA at all (already executed, cancelled,
	// rejected, or not yet acknowledged by the backend).
	StatusPrecludesAuthorisation() bool
	// Initiate submits the object to the backend (payment submission,
	// consent registration, cancellation request).
	Initiate(ctx context.Context, token *models.BearerToken) (*backend.ScaResponse, error)
}

// Payment authorises a payment initiation.
type Payment struct {
	gateway           backend.Gateway
	id                string
	product           string
	debtorIban        string
	transactionStatus string
}

func NewPayment(gateway backend.Gateway, id, product, debtorIban, transactionStatus string) *Payment {
	return &Payment{
		gateway:           gateway,
		id:                id,
		product:           product,
		debtorIban:        debtorIban,
		transactionStatus: transactionStatus,
	}
}

func (p *Payment) ID() string                 { return p.id }
func (p *Payment) Type() models.OperationType { return models.OperationPayment }
func (p *Payment) Product() string            { return p.product }

func (p *Payment) AccountAccess() models.AccountAccess {
	return models.AccountAccess{Accounts: []string{p.debtorIban}}
}

// ISO 20022 transaction status codes under which a payment cannot (or need
// not) be authorised.
var paymentPrecludedStatuses = map[string]bool{
	"RCVD": true, // received, not yet acknowledged by the backend
	"CANC": true,
	"RJCT": true,
	"ACSC": true, // settlement completed
}

func (p *Payment) StatusPrecludesAuthorisation() bool {
	return paymentPrecludedStatuses[p.transactionStatus]
}

func (p *Payment) Initiate(ctx context.Context, token *models.BearerToken) (*backend.ScaResponse, error) {
	return p.gateway.InitiateOperation(ctx, token, models.OperationPayment, p.id)
}

// Consent authorises an account-information consent.
type Consent struct {
	gateway       backend.Gateway
	id            string
	access        models.AccountAccess
	consentStatus string
}

func NewConsent(gateway backend.Gateway, id string, access models.AccountAccess, consentStatus string) *Consent {
	return &Consent{gateway: gateway, id: id, access: access, consentStatus: consentStatus}
}

func (c *Consent) ID() string                          { return c.id }
func (c *Consent) Type() models.OperationType          { return models.OperationConsent }
func (c *Consent) AccountAccess() models.AccountAccess { return c.access }

var consentPrecludedStatuses = map[string]bool{
	"received":          true,
	"rejected":          true,
	"revokedByPsu":      true,
	"expired":           true,
	"terminatedByTpp":   true,
	"terminatedByAspsp": true,
}

func (c *Consent) StatusPrecludesAuthorisation() bool {
	return consentPrecludedStatuses[c.consentStatus]
}

func (c *Consent) Initiate(ctx context.Context, token *models.BearerToken) (*backend.ScaResponse, error) {
	return c.gateway.InitiateOperation(ctx, token, models.OperationConsent, c.id)
}

// PaymentCancellation authorises the cancellation of an existing payment. It
// shares the payment's account scope but targets the cancel flow.
type PaymentCancellation struct {
	gateway           backend.Gateway
	paymentID         string
	debtorIban        string
	transactionStatus string
}

func NewPaymentCancellation(gateway backend.Gateway, paymentID, debtorIban, transactionStatus string) *PaymentCancellation {
	return &PaymentCancellation{
		gateway:           gateway,
		paymentID:         paymentID,
		debtorIban:        debtorIban,
		transactionStatus: transactionStatus,
	}
}

func (p *PaymentCancellation) ID() string                 { return p.paymentID }
func (p *PaymentCancellation) Type() models.OperationType { return models.OperationCancelPayment }

func (p *PaymentCancellation) AccountAccess() models.AccountAccess {
	return models.AccountAccess{Accounts: []string{p.debtorIban}}
}

// A payment that already settled or was cancelled cannot have its
// cancellation authorised.
var cancellationPrecludedStatuses = map[string]bool{
	"CANC": true,
	"RJCT": true,
	"ACSC": true,
}

func (p *PaymentCancellation) StatusPrecludesAuthorisation() bool {
	return cancellationPrecludedStatuses[p.transactionStatus]
}

func (p *PaymentCancellation) Initiate(ctx context.Context, token *models.BearerToken) (*backend.ScaResponse, error) {
	return p.gateway.InitiateOperation(ctx, token, models.OperationCancelPayment, p.paymentID)
}
