// Package engine drives the per-object SCA state machine: bootstrap, PSU
// identification, method selection, code verification and finalisation. All
// state travels in the opaque blob the caller round-trips; the engine holds
// nothing between calls and is safe behind any number of concurrent callers
// as long as no two calls race on the same blob.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"scaflow/internal/backend"
	"scaflow/internal/platform/metrics"
	"scaflow/internal/sca/models"
	"scaflow/internal/sca/statecodec"
	dErrors "scaflow/pkg/domain-errors"
)

//go:generate mockgen -source=engine.go -destination=mocks/mocks.go -package=mocks MultilevelPolicy,StatusNotifier,AttemptTracker

// MultilevelPolicy decides whether more than one PSU must authorise.
type MultilevelPolicy interface {
	IsMultilevelRequired(ctx context.Context, psuID string, access models.AccountAccess) (bool, error)
}

// StatusNotifier is the fire-and-forget push toward consent management.
type StatusNotifier interface {
	NotifyStatus(ctx context.Context, operationID, status string)
}

// AttemptTracker feeds the remaining-attempts counter behind AttemptFailure
// results.
type AttemptTracker interface {
	RecordFailure(ctx context.Context, authorisationID string) (int, error)
	Remaining(ctx context.Context, authorisationID string) (int, error)
	Clear(ctx context.Context, authorisationID string)
}

// DecoupledBuilder renders the out-of-band confirmation message.
type DecoupledBuilder interface {
	Build(psuID, objectID, authorisationID, methodID, tan string) (string, error)
}

// Outcome is what every engine operation hands back: the caller-visible
// result, the updated state and its encoded blob to round-trip.
type Outcome struct {
	Result models.AuthorizationResult
	State  *models.AuthorizationState
	Blob   []byte
}

type Engine struct {
	gateway   backend.Gateway
	policy    MultilevelPolicy
	notifier  StatusNotifier
	attempts  AttemptTracker
	decoupled DecoupledBuilder
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithDecoupledBuilder(builder DecoupledBuilder) Option {
	return func(e *Engine) {
		e.decoupled = builder
	}
}

func New(gateway backend.Gateway, policy MultilevelPolicy, notifier StatusNotifier, attempts AttemptTracker, opts ...Option) (*Engine, error) {
	if gateway == nil {
		return nil, errors.New("backend gateway is required")
	}
	if policy == nil {
		return nil, errors.New("multilevel policy is required")
	}
	if notifier == nil {
		return nil, errors.New("status notifier is required")
	}
	if attempts == nil {
		return nil, errors.New("attempt tracker is required")
	}
	e := &Engine{
		gateway:  gateway,
		policy:   policy,
		notifier: notifier,
		attempts: attempts,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start is the entry point of every authorisation. An empty blob bootstraps a
// fresh STARTED state; a resumable blob is decoded and returned unchanged. A
// non-empty blob that fails to decode is surfaced immediately, never silently
// discarded and restarted.
func (e *Engine) Start(ctx context.Context, obj BusinessObject, psuID string, blob []byte) (*Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), false)
	switch {
	case err == nil:
		return e.outcome(state, models.ResultSuccess, 0, nil)
	case dErrors.Is(err, dErrors.CodeDecodeEmpty):
		return e.bootstrap(ctx, obj, psuID)
	default:
		return nil, err
	}
}

// bootstrap creates the initial state. The only backend interaction is the
// multilevel policy evaluation; a failed lookup still returns the usable
// STARTED state alongside the explicit error instead of guessing single-level.
func (e *Engine) bootstrap(ctx context.Context, obj BusinessObject, psuID string) (*Outcome, error) {
	state := &models.AuthorizationState{
		OperationID:   obj.ID(),
		OperationType: obj.Type(),
		ScaStatus:     models.StatusStarted,
		PsuID:         psuID,
	}
	if payment, ok := obj.(*Payment); ok {
		state.PaymentProduct = payment.Product()
	}
	e.metrics.IncStarted()

	multilevel, policyErr := e.policy.IsMultilevelRequired(ctx, psuID, obj.AccountAccess())
	if policyErr != nil {
		e.logger.WarnContext(ctx, "multilevel policy lookup failed",
			"operation_id", obj.ID(),
			"error", policyErr,
		)
		outcome, err := e.outcome(state, models.ResultSuccess, 0, nil)
		if err != nil {
			return nil, err
		}
		return outcome, policyErr
	}
	state.MultilevelScaRequired = multilevel
	return e.outcome(state, models.ResultSuccess, 0, nil)
}

// Authenticate logs the PSU in, folds the SCA negotiation into the state and,
// when the backend grants immediate progress, initiates the business object.
// A credential rejection is a normal FAILURE result, not an error.
func (e *Engine) Authenticate(ctx context.Context, obj BusinessObject, blob []byte, creds models.PsuCredentials) (*Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), false)
	if err != nil {
		return nil, err
	}
	if state.ScaStatus.IsTerminal() {
		return nil, dErrors.New(dErrors.CodeScaInvalid, "authorisation already terminal")
	}
	if creds.PsuID == "" {
		return nil, dErrors.New(dErrors.CodeFormatError, "psu id is required")
	}
	state.PsuID = creds.PsuID

	token, err := e.gateway.Login(ctx, creds.PsuID, creds.Password)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeCredentialsInvalid) || dErrors.Is(err, dErrors.CodeFormatError) {
			state.Advance(models.StatusFailed)
			e.metrics.IncFailed()
			return e.outcome(state, models.ResultFailure, 0, err)
		}
		e.metrics.IncBackendError()
		return nil, err
	}
	state.AdoptToken(token)

	firstNegotiation := state.ScaStatus == models.StatusStarted

	resp, err := e.gateway.StartSca(ctx, state.BearerToken, backend.StartScaRequest{
		OperationID:     obj.ID(),
		OperationType:   obj.Type(),
		AuthorisationID: state.AuthorisationID,
	})
	if err != nil {
		e.metrics.IncBackendError()
		return nil, err
	}
	e.fold(state, resp, firstNegotiation)

	switch state.ScaStatus {
	case models.StatusExempted, models.StatusPsuAuthenticated, models.StatusPsuIdentified:
		initResp, err := obj.Initiate(ctx, state.BearerToken)
		if err != nil {
			e.metrics.IncBackendError()
			return nil, err
		}
		e.fold(state, initResp, false)
		e.notifyAsync(ctx, obj.ID(), initResp.TransactionStatus)
	}

	return e.outcome(state, models.ResultSuccess, 0, nil)
}

// ListMethods returns the SCA methods available for the authorisation. An
// exempted or precluded object yields an empty list without a backend call; a
// backend answering with zero methods where the protocol expects at least one
// is a process mismatch, not an empty success.
func (e *Engine) ListMethods(ctx context.Context, obj BusinessObject, blob []byte) ([]models.ScaMethod, *Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), true)
	if err != nil {
		return nil, nil, err
	}

	if state.ScaStatus == models.StatusExempted || obj.StatusPrecludesAuthorisation() {
		outcome, err := e.outcome(state, models.ResultSuccess, 0, nil)
		return nil, outcome, err
	}
	if !state.ScaStatus.MethodSelectable() {
		return nil, nil, dErrors.New(dErrors.CodeScaInvalid, "method listing not allowed in status "+string(state.ScaStatus))
	}

	methods, err := e.gateway.ListMethods(ctx, state.BearerToken, state.AuthorisationID)
	if err != nil {
		e.metrics.IncBackendError()
		return nil, nil, err
	}
	if len(methods) == 0 {
		return nil, nil, dErrors.New(dErrors.CodeScaInvalid, "backend offered no SCA methods")
	}

	state.ScaMethods = methods
	outcome, err := e.outcome(state, models.ResultSuccess, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	return methods, outcome, nil
}

// SelectMethod picks an authentication method and folds the generated
// challenge into the state. With the method already selected it surfaces the
// existing challenge instead of re-selecting; a missing method id outside
// that fallback is ServiceNotSupported, and an inconsistent status (still
// STARTED, or terminal) is ScaInvalid.
func (e *Engine) SelectMethod(ctx context.Context, obj BusinessObject, blob []byte, methodID string) (*Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), true)
	if err != nil {
		return nil, err
	}

	if methodID == "" || !state.ScaStatus.MethodSelectable() {
		if state.ScaStatus == models.StatusScaMethodSelected {
			return e.outcome(state, models.ResultSuccess, 0, nil)
		}
		if methodID == "" {
			return nil, dErrors.New(dErrors.CodeServiceNotSupported, "authentication method id is required")
		}
		return nil, dErrors.New(dErrors.CodeScaInvalid, "method selection not allowed in status "+string(state.ScaStatus))
	}
	if len(state.ScaMethods) == 0 {
		return nil, dErrors.New(dErrors.CodeScaInvalid, "no SCA methods negotiated for this authorisation")
	}

	resp, err := e.gateway.SelectMethod(ctx, state.BearerToken, state.OperationID, state.AuthorisationID, methodID)
	if err != nil {
		e.metrics.IncBackendError()
		return nil, err
	}
	e.fold(state, resp, false)

	if method := state.MethodByID(methodID); method != nil && method.Decoupled && e.decoupled != nil {
		tan := ""
		if state.ChallengeData != nil {
			tan = state.ChallengeData.Data
		}
		message, err := e.decoupled.Build(state.PsuID, state.OperationID, state.AuthorisationID, methodID, tan)
		if err != nil {
			return nil, err
		}
		if state.ChallengeData == nil {
			state.ChallengeData = &models.ChallengeData{}
		}
		state.ChallengeData.AdditionalInformation = message
	}

	return e.outcome(state, models.ResultSuccess, 0, nil)
}

// VerifyCode submits the TAN. A retry-eligible attempt failure keeps the
// state untouched and reports the remaining attempts; success on a terminal
// status triggers execution and the consent-management notification.
func (e *Engine) VerifyCode(ctx context.Context, obj BusinessObject, blob []byte, code string) (*Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), true)
	if err != nil {
		return nil, err
	}
	if state.ScaStatus != models.StatusScaMethodSelected {
		return nil, dErrors.New(dErrors.CodeScaInvalid, "code verification requires a selected SCA method")
	}

	resp, err := e.gateway.ValidateCode(ctx, state.BearerToken, state.AuthorisationID, code)
	if err != nil {
		switch {
		case dErrors.Is(err, dErrors.CodeAttemptFailure):
			e.metrics.IncAttemptFailure()
			remaining, recordErr := e.attempts.RecordFailure(ctx, state.AuthorisationID)
			if recordErr != nil {
				e.logger.WarnContext(ctx, "failed to record attempt failure",
					"authorisation_id", state.AuthorisationID,
					"error", recordErr,
				)
			}
			// Business-object status is unchanged; the session stays alive.
			return e.outcome(state, models.ResultAttemptFailure, remaining, err)
		case dErrors.Is(err, dErrors.CodeCredentialsInvalid):
			state.Advance(models.StatusFailed)
			e.metrics.IncFailed()
			return e.outcome(state, models.ResultFailure, 0, err)
		default:
			e.metrics.IncBackendError()
			return nil, err
		}
	}

	e.fold(state, resp, false)
	e.attempts.Clear(ctx, state.AuthorisationID)

	if state.ScaStatus == models.StatusFinalised || state.ScaStatus == models.StatusExempted {
		if state.MultilevelScaRequired && state.PartiallyAuthorised {
			// More signers outstanding; execution waits for the last one.
			e.notifyAsync(ctx, obj.ID(), "PATC")
			return e.outcome(state, models.ResultSuccess, 0, nil)
		}
		transactionStatus, err := e.gateway.ExecuteOperation(ctx, state.BearerToken, obj.Type(), state.OperationID)
		if err != nil {
			e.metrics.IncBackendError()
			return nil, err
		}
		e.metrics.IncFinalised()
		e.notifyAsync(ctx, obj.ID(), transactionStatus)
	}

	return e.outcome(state, models.ResultSuccess, 0, nil)
}

// Status reconciles the blob against the backend's current view when the
// authorisation already exists there, and otherwise just echoes the decoded
// state. Mid-verification it also reports how many TAN attempts are left.
func (e *Engine) Status(ctx context.Context, obj BusinessObject, blob []byte) (*Outcome, error) {
	state, err := statecodec.DecodeTyped(blob, obj.Type(), false)
	if err != nil {
		return nil, err
	}
	if state.AuthorisationID != "" && !state.BearerToken.Empty() && !state.ScaStatus.IsTerminal() {
		resp, err := e.gateway.GetSca(ctx, state.BearerToken, state.AuthorisationID)
		if err != nil {
			e.metrics.IncBackendError()
			return nil, err
		}
		e.fold(state, resp, false)
	}

	remaining := 0
	if state.ScaStatus == models.StatusScaMethodSelected && state.AuthorisationID != "" {
		r, err := e.attempts.Remaining(ctx, state.AuthorisationID)
		if err != nil {
			e.logger.WarnContext(ctx, "failed to read remaining attempts",
				"authorisation_id", state.AuthorisationID,
				"error", err,
			)
		} else {
			remaining = r
		}
	}
	return e.outcome(state, models.ResultSuccess, remaining, nil)
}

// fold merges a backend response into the state. Status moves only forward,
// and an omitted bearer token never clears the one already held.
func (e *Engine) fold(state *models.AuthorizationState, resp *backend.ScaResponse, firstNegotiation bool) {
	if resp.AuthorisationID != "" {
		state.AuthorisationID = resp.AuthorisationID
	}
	state.Advance(resp.ScaStatus)
	state.AdoptToken(resp.BearerToken)
	if len(resp.ScaMethods) > 0 {
		state.ScaMethods = resp.ScaMethods
	}
	if resp.ChallengeData != nil {
		state.ChallengeData = resp.ChallengeData
	}
	if resp.OperationObjectID != "" {
		state.OperationObjectID = resp.OperationObjectID
	}
	if firstNegotiation {
		state.MultilevelScaRequired = state.MultilevelScaRequired || resp.MultilevelScaRequired
	}
	if resp.PartiallyAuthorised {
		state.PartiallyAuthorised = true
	}
}

func (e *Engine) outcome(state *models.AuthorizationState, status models.ResultStatus, remaining int, resultErr error) (*Outcome, error) {
	blob, err := statecodec.Encode(state)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Result: models.AuthorizationResult{
			Status:            status,
			ScaStatus:         state.ScaStatus,
			RemainingAttempts: remaining,
			Err:               resultErr,
		},
		State: state,
		Blob:  blob,
	}, nil
}

// notifyAsync pushes the status update without blocking or failing the
// authorisation. The detached context lets the notification outlive the
// inbound request.
func (e *Engine) notifyAsync(ctx context.Context, operationID, status string) {
	if status == "" {
		return
	}
	go e.notifier.NotifyStatus(context.WithoutCancel(ctx), operationID, status)
}
