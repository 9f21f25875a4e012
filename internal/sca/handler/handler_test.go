package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaflow/internal/backend"
	"scaflow/internal/sca/engine"
	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
)

type stubService struct {
	outcome *engine.Outcome
	methods []models.ScaMethod
	err     error

	gotObj      engine.BusinessObject
	gotPsuID    string
	gotBlob     []byte
	gotMethodID string
	gotCode     string
}

func (s *stubService) Start(_ context.Context, obj engine.BusinessObject, psuID string, blob []byte) (*engine.Outcome, error) {
	s.gotObj, s.gotPsuID, s.gotBlob = obj, psuID, blob
	return s.outcome, s.err
}

func (s *stubService) Authenticate(_ context.Context, obj engine.BusinessObject, blob []byte, creds models.PsuCredentials) (*engine.Outcome, error) {
	s.gotObj, s.gotPsuID, s.gotBlob = obj, creds.PsuID, blob
	return s.outcome, s.err
}

func (s *stubService) ListMethods(_ context.Context, obj engine.BusinessObject, blob []byte) ([]models.ScaMethod, *engine.Outcome, error) {
	s.gotObj, s.gotBlob = obj, blob
	return s.methods, s.outcome, s.err
}

func (s *stubService) SelectMethod(_ context.Context, obj engine.BusinessObject, blob []byte, methodID string) (*engine.Outcome, error) {
	s.gotObj, s.gotBlob, s.gotMethodID = obj, blob, methodID
	return s.outcome, s.err
}

func (s *stubService) VerifyCode(_ context.Context, obj engine.BusinessObject, blob []byte, code string) (*engine.Outcome, error) {
	s.gotObj, s.gotBlob, s.gotCode = obj, blob, code
	return s.outcome, s.err
}

func (s *stubService) Status(_ context.Context, obj engine.BusinessObject, blob []byte) (*engine.Outcome, error) {
	s.gotObj, s.gotBlob = obj, blob
	return s.outcome, s.err
}

func newTestServer(service Service) *httptest.Server {
	h := New(service, backend.NewSandbox("", slog.New(slog.NewTextHandler(io.Discard, nil))), slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return httptest.NewServer(r)
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func successOutcome(status models.ScaStatus) *engine.Outcome {
	return &engine.Outcome{
		Result: models.AuthorizationResult{
			Status:    models.ResultSuccess,
			ScaStatus: status,
		},
		State: &models.AuthorizationState{ScaStatus: status},
		Blob:  []byte(`{"object_type":"sca/payment"}`),
	}
}

func TestHandleStart(t *testing.T) {
	service := &stubService{outcome: successOutcome(models.StatusStarted)}
	srv := newTestServer(service)
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/payments/pay-1/start", authorisationRequest{
		Object: objectDescriptor{
			PaymentProduct:    "sepa-credit-transfers",
			DebtorIban:        "DE89370400440532013000",
			TransactionStatus: "ACTC",
		},
		PsuID: "psu-1",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res authorisationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "SUCCESS", res.Status)
	assert.Equal(t, "STARTED", res.ScaStatus)

	blob, err := base64.StdEncoding.DecodeString(res.State)
	require.NoError(t, err)
	assert.JSONEq(t, `{"object_type":"sca/payment"}`, string(blob))

	payment, ok := service.gotObj.(*engine.Payment)
	require.True(t, ok)
	assert.Equal(t, "pay-1", payment.ID())
	assert.Equal(t, "psu-1", service.gotPsuID)
}

func TestHandleStartUnknownOperationType(t *testing.T) {
	srv := newTestServer(&stubService{})
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/loans/loan-1/start", authorisationRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleStartRejectsBadBase64State(t *testing.T) {
	srv := newTestServer(&stubService{})
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/payments/pay-1/start", authorisationRequest{
		State: "%%% not base64 %%%",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleAuthenticatePassesDecodedState(t *testing.T) {
	service := &stubService{outcome: successOutcome(models.StatusPsuAuthenticated)}
	srv := newTestServer(service)
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/consents/cons-1/authenticate", authorisationRequest{
		Object:   objectDescriptor{Accounts: []string{"DE1"}, ConsentStatus: "valid"},
		PsuID:    "psu-1",
		Password: "secret",
		State:    base64.StdEncoding.EncodeToString([]byte(`{"object_type":"sca/consent"}`)),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.JSONEq(t, `{"object_type":"sca/consent"}`, string(service.gotBlob))
	_, ok := service.gotObj.(*engine.Consent)
	assert.True(t, ok)
}

func TestHandleVerifyCodeAttemptFailure(t *testing.T) {
	service := &stubService{outcome: &engine.Outcome{
		Result: models.AuthorizationResult{
			Status:            models.ResultAttemptFailure,
			ScaStatus:         models.StatusScaMethodSelected,
			RemainingAttempts: 2,
			Err:               dErrors.New(dErrors.CodeAttemptFailure, "TAN rejected"),
		},
		State: &models.AuthorizationState{ScaStatus: models.StatusScaMethodSelected},
		Blob:  []byte(`{}`),
	}}
	srv := newTestServer(service)
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/payments/pay-1/verify", authorisationRequest{Code: "000000"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res authorisationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "ATTEMPT_FAILURE", res.Status)
	assert.Equal(t, 2, res.RemainingAttempts)
	assert.Equal(t, string(dErrors.CodeAttemptFailure), res.Error)
	assert.Equal(t, "000000", service.gotCode)
}

func TestHandleSelectMethodErrorEnvelope(t *testing.T) {
	service := &stubService{err: dErrors.New(dErrors.CodeScaInvalid, "method selection not allowed")}
	srv := newTestServer(service)
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/payments/pay-1/select", authorisationRequest{MethodID: "SMTP_OTP"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, string(dErrors.CodeScaInvalid), envelope.Error)
	assert.Equal(t, "SMTP_OTP", service.gotMethodID)
}

func TestHandleListMethods(t *testing.T) {
	methods := []models.ScaMethod{{ID: "SMTP_OTP"}, {ID: "MOBILE", Decoupled: true}}
	service := &stubService{outcome: successOutcome(models.StatusPsuAuthenticated), methods: methods}
	srv := newTestServer(service)
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/authorisations/payment-cancellations/pay-1/methods", authorisationRequest{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res authorisationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, methods, res.Methods)
	_, ok := service.gotObj.(*engine.PaymentCancellation)
	assert.True(t, ok)
}
