// Package handler exposes the authorisation engine over HTTP. State travels
// as a base64 blob inside the JSON bodies; the server keeps nothing between
// calls.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scaflow/internal/backend"
	"scaflow/internal/platform/middleware"
	"scaflow/internal/sca/engine"
	"scaflow/internal/sca/models"
	"scaflow/internal/transport/http/shared"
	dErrors "scaflow/pkg/domain-errors"
)

// Service is the engine surface the handler needs.
type Service interface {
	Start(ctx context.Context, obj engine.BusinessObject, psuID string, blob []byte) (*engine.Outcome, error)
	Authenticate(ctx context.Context, obj engine.BusinessObject, blob []byte, creds models.PsuCredentials) (*engine.Outcome, error)
	ListMethods(ctx context.Context, obj engine.BusinessObject, blob []byte) ([]models.ScaMethod, *engine.Outcome, error)
	SelectMethod(ctx context.Context, obj engine.BusinessObject, blob []byte, methodID string) (*engine.Outcome, error)
	VerifyCode(ctx context.Context, obj engine.BusinessObject, blob []byte, code string) (*engine.Outcome, error)
	Status(ctx context.Context, obj engine.BusinessObject, blob []byte) (*engine.Outcome, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
	gateway backend.Gateway
}

func New(service Service, gateway backend.Gateway, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		gateway: gateway,
	}
}

// Register mounts the authorisation routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/authorisations/{operationType}/{operationID}", func(r chi.Router) {
		r.Post("/start", h.handleStart)
		r.Post("/authenticate", h.handleAuthenticate)
		r.Post("/methods", h.handleListMethods)
		r.Post("/select", h.handleSelectMethod)
		r.Post("/verify", h.handleVerifyCode)
		r.Post("/status", h.handleStatus)
	})
}

// objectDescriptor carries the business-object attributes the engine cannot
// recover from the opaque state alone.
type objectDescriptor struct {
	PaymentProduct    string   `json:"payment_product,omitempty"`
	DebtorIban        string   `json:"debtor_iban,omitempty"`
	TransactionStatus string   `json:"transaction_status,omitempty"`
	ConsentStatus     string   `json:"consent_status,omitempty"`
	Accounts          []string `json:"accounts,omitempty"`
	Balances          []string `json:"balances,omitempty"`
	Transactions      []string `json:"transactions,omitempty"`
}

type authorisationRequest struct {
	Object   objectDescriptor `json:"object"`
	PsuID    string           `json:"psu_id,omitempty"`
	Password string           `json:"password,omitempty"`
	MethodID string           `json:"method_id,omitempty"`
	Code     string           `json:"code,omitempty"`
	State    string           `json:"state,omitempty"`
}

type authorisationResponse struct {
	Status            string                `json:"status"`
	ScaStatus         string                `json:"sca_status"`
	RemainingAttempts int                   `json:"remaining_attempts,omitempty"`
	Error             string                `json:"error,omitempty"`
	State             string                `json:"state"`
	Methods           []models.ScaMethod    `json:"methods,omitempty"`
	Challenge         *models.ChallengeData `json:"challenge,omitempty"`
}

var operationTypeBySegment = map[string]models.OperationType{
	"payments":              models.OperationPayment,
	"consents":              models.OperationConsent,
	"payment-cancellations": models.OperationCancelPayment,
}

func (h *Handler) parse(r *http.Request) (engine.BusinessObject, *authorisationRequest, []byte, error) {
	operationType, ok := operationTypeBySegment[chi.URLParam(r, "operationType")]
	if !ok {
		return nil, nil, nil, dErrors.New(dErrors.CodeBadRequest, "unknown operation type")
	}
	operationID := chi.URLParam(r, "operationID")
	if operationID == "" {
		return nil, nil, nil, dErrors.New(dErrors.CodeBadRequest, "operation id is required")
	}

	var req authorisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}

	blob, err := base64.StdEncoding.DecodeString(req.State)
	if err != nil {
		return nil, nil, nil, dErrors.New(dErrors.CodeBadRequest, "state is not valid base64")
	}

	var obj engine.BusinessObject
	switch operationType {
	case models.OperationPayment:
		obj = engine.NewPayment(h.gateway, operationID, req.Object.PaymentProduct, req.Object.DebtorIban, req.Object.TransactionStatus)
	case models.OperationConsent:
		obj = engine.NewConsent(h.gateway, operationID, models.AccountAccess{
			Accounts:     req.Object.Accounts,
			Balances:     req.Object.Balances,
			Transactions: req.Object.Transactions,
		}, req.Object.ConsentStatus)
	case models.OperationCancelPayment:
		obj = engine.NewPaymentCancellation(h.gateway, operationID, req.Object.DebtorIban, req.Object.TransactionStatus)
	}
	return obj, &req, blob, nil
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	obj, req, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	outcome, err := h.service.Start(r.Context(), obj, req.PsuID, blob)
	h.respond(w, r, outcome, nil, err)
}

func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	obj, req, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	outcome, err := h.service.Authenticate(r.Context(), obj, blob, models.PsuCredentials{
		PsuID:    req.PsuID,
		Password: req.Password,
	})
	h.respond(w, r, outcome, nil, err)
}

func (h *Handler) handleListMethods(w http.ResponseWriter, r *http.Request) {
	obj, _, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	methods, outcome, err := h.service.ListMethods(r.Context(), obj, blob)
	h.respond(w, r, outcome, methods, err)
}

func (h *Handler) handleSelectMethod(w http.ResponseWriter, r *http.Request) {
	obj, req, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	outcome, err := h.service.SelectMethod(r.Context(), obj, blob, req.MethodID)
	h.respond(w, r, outcome, nil, err)
}

func (h *Handler) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	obj, req, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	outcome, err := h.service.VerifyCode(r.Context(), obj, blob, req.Code)
	h.respond(w, r, outcome, nil, err)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	obj, _, blob, err := h.parse(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	outcome, err := h.service.Status(r.Context(), obj, blob)
	h.respond(w, r, outcome, nil, err)
}

// respond renders the outcome. A bootstrap that failed its multilevel lookup
// still carries a usable outcome; the error wins in that case so the caller
// sees the lookup failure explicitly.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, outcome *engine.Outcome, methods []models.ScaMethod, err error) {
	if err != nil {
		h.logger.WarnContext(r.Context(), "authorisation step failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	res := authorisationResponse{
		Status:            string(outcome.Result.Status),
		ScaStatus:         string(outcome.Result.ScaStatus),
		RemainingAttempts: outcome.Result.RemainingAttempts,
		State:             base64.StdEncoding.EncodeToString(outcome.Blob),
		Methods:           methods,
		Challenge:         outcome.State.ChallengeData,
	}
	if outcome.Result.Err != nil {
		res.Error = string(dErrors.CodeOf(outcome.Result.Err))
	}
	shared.WriteJSON(w, http.StatusOK, res)
}
