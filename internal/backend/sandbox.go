package backend

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

// Sandbox is an in-process Gateway for demo deployments. It never touches a
// real core-banking system: logins accept any non-empty password, TANs are
// TOTP codes minted from a per-authorisation secret, and multilevel is flagged
// for any access touching more than one account. Selected via SANDBOX_MODE so
// mock behavior stays out of the state machine itself.
var _ Gateway = (*Sandbox)(nil)

type Sandbox struct {
	issuer string
	logger *slog.Logger

	mu             sync.Mutex
	authorisations map[string]*sandboxAuthorisation
}

type sandboxAuthorisation struct {
	operationID   string
	operationType models.OperationType
	status        models.ScaStatus
	secret        string
	methodID      string
}

func NewSandbox(issuer string, logger *slog.Logger) *Sandbox {
	if issuer == "" {
		issuer = "scaflow-sandbox"
	}
	return &Sandbox{
		issuer:         issuer,
		logger:         logger,
		authorisations: make(map[string]*sandboxAuthorisation),
	}
}

var sandboxMethods = []models.ScaMethod{
	{ID: "SMTP_OTP", Type: "SMTP_OTP", Name: "Email TAN"},
	{ID: "MOBILE", Type: "PUSH_OTP", Decoupled: true, Name: "Mobile app confirmation"},
}

func (s *Sandbox) Login(_ context.Context, psuID, password string) (*models.BearerToken, error) {
	if psuID == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeCredentialsInvalid, "unknown PSU")
	}
	return &models.BearerToken{
		AccessToken: "sandbox-" + uuid.NewString(),
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		Scopes:      []string{"sca"},
	}, nil
}

func (s *Sandbox) StartSca(_ context.Context, token *models.BearerToken, req StartScaRequest) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.AuthorisationID != "" {
		if existing, ok := s.authorisations[req.AuthorisationID]; ok {
			return s.responseLocked(req.AuthorisationID, existing), nil
		}
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: req.OperationID,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generate sandbox TAN secret")
	}

	authID := uuid.NewString()
	auth := &sandboxAuthorisation{
		operationID:   req.OperationID,
		operationType: req.OperationType,
		status:        models.StatusPsuAuthenticated,
		secret:        key.Secret(),
	}
	s.authorisations[authID] = auth
	s.logger.Info("sandbox SCA started",
		"authorisation_id", authID,
		"operation_id", req.OperationID,
		"totp_secret", key.Secret(),
	)
	return s.responseLocked(authID, auth), nil
}

func (s *Sandbox) ListMethods(_ context.Context, token *models.BearerToken, authorisationID string) ([]models.ScaMethod, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if _, err := s.find(authorisationID); err != nil {
		return nil, err
	}
	return sandboxMethods, nil
}

func (s *Sandbox) SelectMethod(_ context.Context, token *models.BearerToken, _, authorisationID, methodID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	known := false
	for _, m := range sandboxMethods {
		if m.ID == methodID {
			known = true
		}
	}
	if !known {
		return nil, dErrors.New(dErrors.CodeMethodUnknown, "unknown sandbox method "+methodID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	auth, ok := s.authorisations[authorisationID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeCredentialsInvalid, "unknown authorisation")
	}
	auth.methodID = methodID
	auth.status = models.StatusScaMethodSelected
	resp := s.responseLocked(authorisationID, auth)
	resp.ChallengeData = &models.ChallengeData{
		AdditionalInformation: "enter the current code from your authenticator",
	}
	return resp, nil
}

func (s *Sandbox) InitiateOperation(_ context.Context, token *models.BearerToken, _ models.OperationType, operationID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	return &ScaResponse{
		OperationObjectID: operationID,
		ScaStatus:         models.StatusPsuAuthenticated,
		TransactionStatus: "ACTC",
	}, nil
}

func (s *Sandbox) ValidateCode(_ context.Context, token *models.BearerToken, authorisationID, code string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	auth, ok := s.authorisations[authorisationID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeCredentialsInvalid, "unknown authorisation")
	}
	if !totp.Validate(code, auth.secret) {
		return nil, dErrors.New(dErrors.CodeAttemptFailure, "TAN rejected")
	}
	auth.status = models.StatusFinalised
	return s.responseLocked(authorisationID, auth), nil
}

func (s *Sandbox) GetSca(_ context.Context, token *models.BearerToken, authorisationID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	auth, err := s.find(authorisationID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responseLocked(authorisationID, auth), nil
}

func (s *Sandbox) ExecuteOperation(_ context.Context, token *models.BearerToken, _ models.OperationType, _ string) (string, error) {
	if err := requireToken(token); err != nil {
		return "", err
	}
	return "ACSC", nil
}

func (s *Sandbox) MultilevelScaRequired(_ context.Context, psuID string, ibans []string) (bool, error) {
	if psuID == "" {
		return false, nil
	}
	return len(ibans) > 1, nil
}

func (s *Sandbox) find(authorisationID string) (*sandboxAuthorisation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auth, ok := s.authorisations[authorisationID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeCredentialsInvalid, "unknown authorisation")
	}
	return auth, nil
}

func (s *Sandbox) responseLocked(authorisationID string, auth *sandboxAuthorisation) *ScaResponse {
	return &ScaResponse{
		AuthorisationID:   authorisationID,
		ScaStatus:         auth.status,
		ScaMethods:        sandboxMethods,
		OperationObjectID: auth.operationID,
		TransactionStatus: "ACTC",
	}
}
