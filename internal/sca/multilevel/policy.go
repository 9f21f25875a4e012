// Package multilevel decides whether a business object needs more than one
// authorising PSU.
package multilevel

import (
	"context"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

//go:generate mockgen -source=policy.go -destination=mocks/mocks.go -package=mocks Backend

// Backend is the single account lookup the policy depends on.
type Backend interface {
	MultilevelScaRequired(ctx context.Context, psuID string, ibans []string) (bool, error)
}

type Policy struct {
	backend Backend
}

func NewPolicy(backend Backend) *Policy {
	return &Policy{backend: backend}
}

// IsMultilevelRequired evaluates the multilevel requirement for the accounts
// the access scope touches. A blank PSU id always yields false without a
// backend call: multilevel cannot be evaluated for an unidentified PSU. A
// backend failure surfaces as CodeUnknownAccount instead of defaulting to
// false, because under-reporting would let a single signer authorise a
// multi-signer object.
func (p *Policy) IsMultilevelRequired(ctx context.Context, psuID string, access models.AccountAccess) (bool, error) {
	if psuID == "" {
		return false, nil
	}
	ibans := access.AllIbans()
	if len(ibans) == 0 {
		return false, nil
	}
	required, err := p.backend.MultilevelScaRequired(ctx, psuID, ibans)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnknownAccount, "multilevel lookup failed for referenced accounts")
	}
	return required, nil
}
