package multilevel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

type stubBackend struct {
	required bool
	err      error
	calls    int
	gotIbans []string
}

func (s *stubBackend) MultilevelScaRequired(_ context.Context, _ string, ibans []string) (bool, error) {
	s.calls++
	s.gotIbans = ibans
	return s.required, s.err
}

func TestBlankPsuNeverCallsBackend(t *testing.T) {
	backend := &stubBackend{required: true}
	policy := NewPolicy(backend)

	required, err := policy.IsMultilevelRequired(context.Background(), "", models.AccountAccess{
		Accounts: []string{"DE02100100109307118603"},
	})
	require.NoError(t, err)
	assert.False(t, required)
	assert.Zero(t, backend.calls)
}

func TestEmptyAccessNeverCallsBackend(t *testing.T) {
	backend := &stubBackend{required: true}
	policy := NewPolicy(backend)

	required, err := policy.IsMultilevelRequired(context.Background(), "psu1", models.AccountAccess{})
	require.NoError(t, err)
	assert.False(t, required)
	assert.Zero(t, backend.calls)
}

func TestBackendFailureIsUnknownAccount(t *testing.T) {
	backend := &stubBackend{err: errors.New("ledger down")}
	policy := NewPolicy(backend)

	_, err := policy.IsMultilevelRequired(context.Background(), "psu1", models.AccountAccess{
		Accounts: []string{"DE02100100109307118603"},
	})
	assert.True(t, dErrors.Is(err, dErrors.CodeUnknownAccount))
}

func TestIbansDeduplicatedAcrossScopes(t *testing.T) {
	backend := &stubBackend{required: true}
	policy := NewPolicy(backend)

	required, err := policy.IsMultilevelRequired(context.Background(), "psu1", models.AccountAccess{
		Accounts:     []string{"DE1", "DE2"},
		Balances:     []string{"DE2"},
		Transactions: []string{"DE1", "DE3", ""},
	})
	require.NoError(t, err)
	assert.True(t, required)
	assert.ElementsMatch(t, []string{"DE1", "DE2", "DE3"}, backend.gotIbans)
}
