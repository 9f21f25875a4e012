package backend

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

func TestSandboxFullFlow(t *testing.T) {
	s := NewSandbox("test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	token, err := s.Login(ctx, "psu1", "anything")
	require.NoError(t, err)
	require.False(t, token.Empty())

	started, err := s.StartSca(ctx, token, StartScaRequest{
		OperationID:   "pay-1",
		OperationType: models.OperationPayment,
	})
	require.NoError(t, err)
	require.NotEmpty(t, started.AuthorisationID)

	// Idempotent re-invocation with the same authorisation id.
	again, err := s.StartSca(ctx, token, StartScaRequest{
		OperationID:     "pay-1",
		OperationType:   models.OperationPayment,
		AuthorisationID: started.AuthorisationID,
	})
	require.NoError(t, err)
	assert.Equal(t, started.AuthorisationID, again.AuthorisationID)

	methods, err := s.ListMethods(ctx, token, started.AuthorisationID)
	require.NoError(t, err)
	require.NotEmpty(t, methods)

	selected, err := s.SelectMethod(ctx, token, "pay-1", started.AuthorisationID, methods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScaMethodSelected, selected.ScaStatus)
	require.NotNil(t, selected.ChallengeData)

	// Wrong code keeps the session alive.
	_, err = s.ValidateCode(ctx, token, started.AuthorisationID, "000000")
	assert.True(t, dErrors.Is(err, dErrors.CodeAttemptFailure))

	secret := s.authorisations[started.AuthorisationID].secret
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	finalised, err := s.ValidateCode(ctx, token, started.AuthorisationID, code)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinalised, finalised.ScaStatus)

	status, err := s.ExecuteOperation(ctx, token, models.OperationPayment, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "ACSC", status)
}

func TestSandboxLoginRejectsEmptyCredentials(t *testing.T) {
	s := NewSandbox("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := s.Login(context.Background(), "", "pw")
	assert.True(t, dErrors.Is(err, dErrors.CodeCredentialsInvalid))
}

func TestSandboxMultilevel(t *testing.T) {
	s := NewSandbox("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	required, err := s.MultilevelScaRequired(ctx, "psu1", []string{"DE1", "DE2"})
	require.NoError(t, err)
	assert.True(t, required)

	required, err = s.MultilevelScaRequired(ctx, "psu1", []string{"DE1"})
	require.NoError(t, err)
	assert.False(t, required)
}
