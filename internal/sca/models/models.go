package models

import (
	"time"
)

// OperationType discriminates the business object an authorisation targets.
type OperationType string

const (
	OperationPayment       OperationType = "PAYMENT"
	OperationConsent       OperationType = "CONSENT"
	OperationCancelPayment OperationType = "CANCEL_PAYMENT"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationPayment, OperationConsent, OperationCancelPayment:
		return true
	}
	return false
}

// ScaStatus is the current step of an authorisation attempt. Transitions are
// monotonic per attempt; a failed attempt terminates the state, it never rolls
// back to an earlier status.
type ScaStatus string

const (
	StatusStarted           ScaStatus = "STARTED"
	StatusPsuIdentified     ScaStatus = "PSU_IDENTIFIED"
	StatusPsuAuthenticated  ScaStatus = "PSU_AUTHENTICATED"
	StatusScaMethodSelected ScaStatus = "SCA_METHOD_SELECTED"
	StatusFinalised         ScaStatus = "FINALISED"
	StatusExempted          ScaStatus = "EXEMPTED"
	StatusFailed            ScaStatus = "FAILED"
)

var statusRank = map[ScaStatus]int{
	StatusStarted:           0,
	StatusPsuIdentified:     1,
	StatusPsuAuthenticated:  2,
	StatusScaMethodSelected: 3,
	StatusFinalised:         4,
	StatusExempted:          4,
	StatusFailed:            4,
}

// Rank returns the position of s in the status ordering. Unknown statuses rank
// below STARTED so they can never win a monotonicity comparison.
func (s ScaStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// IsTerminal reports whether the attempt is finished.
func (s ScaStatus) IsTerminal() bool {
	return s == StatusFinalised || s == StatusExempted || s == StatusFailed
}

// MethodSelectable reports whether method listing/selection is still valid.
func (s ScaStatus) MethodSelectable() bool {
	return s == StatusPsuIdentified || s == StatusPsuAuthenticated
}

// BearerToken is the credential issued by the core-banking login and replayed
// on every subsequent backend call.
type BearerToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Empty reports whether the token carries no credential.
func (t *BearerToken) Empty() bool {
	return t == nil || t.AccessToken == ""
}

// ScaMethod describes one available authentication method.
type ScaMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type,omitempty"`
	Decoupled bool   `json:"decoupled,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ChallengeData is produced when a method is selected.
type ChallengeData struct {
	AdditionalInformation string `json:"additional_information,omitempty"`
	Data                  string `json:"data,omitempty"`
	Image                 []byte `json:"image,omitempty"`
	ImageLink             string `json:"image_link,omitempty"`
}

// AuthorizationState is the full SCA bookkeeping for one authorisation
// attempt. It round-trips through the opaque blob the caller persists between
// requests; the core holds nothing else.
type AuthorizationState struct {
	OperationID     string        `json:"operation_id"`
	OperationType   OperationType `json:"operation_type"`
	AuthorisationID string        `json:"authorisation_id,omitempty"`
	ScaStatus       ScaStatus     `json:"sca_status"`
	PsuID           string        `json:"psu_id,omitempty"`

	BearerToken *BearerToken `json:"bearer_token,omitempty"`

	ScaMethods    []ScaMethod    `json:"sca_methods,omitempty"`
	ChallengeData *ChallengeData `json:"challenge_data,omitempty"`

	MultilevelScaRequired bool `json:"multilevel_sca_required"`
	PartiallyAuthorised   bool `json:"partially_authorised"`

	// OperationObjectID echoes the backend's own id for the business object
	// when it differs from the client-visible one, so the flow can resume.
	OperationObjectID string `json:"operation_object_id,omitempty"`
	PaymentProduct    string `json:"payment_product,omitempty"`
}

// MethodByID finds a listed SCA method. Returns nil when absent.
func (s *AuthorizationState) MethodByID(id string) *ScaMethod {
	for i := range s.ScaMethods {
		if s.ScaMethods[i].ID == id {
			return &s.ScaMethods[i]
		}
	}
	return nil
}

// Advance moves the status forward. Backward transitions are dropped: a
// backend echoing an older status must not regress an attempt.
func (s *AuthorizationState) Advance(next ScaStatus) {
	if next.Rank() >= s.ScaStatus.Rank() {
		s.ScaStatus = next
	}
}

// AdoptToken replaces the bearer token only when the backend actually sent
// one. Backends may omit repeating an unchanged token; the previous credential
// is carried forward in that case.
func (s *AuthorizationState) AdoptToken(token *BearerToken) {
	if !token.Empty() {
		s.BearerToken = token
	}
}

// ResultStatus is the caller-visible outcome of one engine operation.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "SUCCESS"
	// ResultFailure ends the attempt; a fresh authorisation must be started.
	ResultFailure ResultStatus = "FAILURE"
	// ResultAttemptFailure keeps the session alive for a bounded retry.
	ResultAttemptFailure ResultStatus = "ATTEMPT_FAILURE"
)

// AuthorizationResult pairs an outcome with the state to re-encode. For
// ATTEMPT_FAILURE, RemainingAttempts tells the caller whether to offer the PSU
// another try.
type AuthorizationResult struct {
	Status            ResultStatus
	ScaStatus         ScaStatus
	RemainingAttempts int
	Err               error
}

// PsuCredentials are the PSU login inputs for the identification step.
type PsuCredentials struct {
	PsuID    string
	Password string
}

// AccountAccess is the account scope a consent or payment touches, used by the
// multilevel policy.
type AccountAccess struct {
	Accounts     []string
	Balances     []string
	Transactions []string
}

// AllIbans returns the deduplicated union of all referenced account ids.
func (a AccountAccess) AllIbans() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{a.Accounts, a.Balances, a.Transactions} {
		for _, iban := range group {
			if _, dup := seen[iban]; dup || iban == "" {
				continue
			}
			seen[iban] = struct{}{}
			out = append(out, iban)
		}
	}
	return out
}
