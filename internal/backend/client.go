package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"scaflow/internal/sca/models"
	dErrors "scaflow/pkg/domain-errors"
	"scaflow/pkg/platform/circuit"
)

// Client is the HTTP implementation of Gateway. Timeouts and retries of the
// raw call belong to the injected http.Client; the engine adds none of its
// own.
var _ Gateway = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	breaker *circuit.Breaker
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBreaker guards the backend with a circuit breaker. While open, calls
// fail fast as technical errors instead of queueing on a dead backend; after
// the breaker's cooldown a trial call is let through so recovery closes it.
func WithBreaker(breaker *circuit.Breaker) ClientOption {
	return func(c *Client) {
		c.breaker = breaker
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "backend base URL is required")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	PsuID    string `json:"psu_id"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	Scopes       []string `json:"scopes"`
}

// bearerToken converts the wire token, recovering expiry from the access
// token's exp claim when the backend omits expires_in. The parse is
// unverified: the connector is a client of the issuer, not a verifier.
func (r tokenResponse) bearerToken(now time.Time) *models.BearerToken {
	token := &models.BearerToken{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		Scopes:       r.Scopes,
	}
	if r.ExpiresIn > 0 {
		token.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
		return token
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			token.ExpiresAt = exp.Time
		}
	}
	return token
}

func (c *Client) Login(ctx context.Context, psuID, password string) (*models.BearerToken, error) {
	var res tokenResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{PsuID: psuID, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return res.bearerToken(time.Now()), nil
}

func (c *Client) StartSca(ctx context.Context, token *models.BearerToken, req StartScaRequest) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res ScaResponse
	if err := c.do(ctx, http.MethodPost, "/sca", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListMethods(ctx context.Context, token *models.BearerToken, authorisationID string) ([]models.ScaMethod, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res struct {
		Methods []models.ScaMethod `json:"methods"`
	}
	path := "/sca/" + url.PathEscape(authorisationID) + "/methods"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &res); err != nil {
		return nil, err
	}
	return res.Methods, nil
}

func (c *Client) SelectMethod(ctx context.Context, token *models.BearerToken, operationID, authorisationID, methodID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	body := struct {
		OperationID string `json:"operation_id"`
		MethodID    string `json:"method_id"`
	}{OperationID: operationID, MethodID: methodID}
	var res ScaResponse
	path := "/sca/" + url.PathEscape(authorisationID) + "/select"
	if err := c.do(ctx, http.MethodPost, path, token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) InitiateOperation(ctx context.Context, token *models.BearerToken, operationType models.OperationType, operationID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res ScaResponse
	path := "/operations/" + url.PathEscape(strings.ToLower(string(operationType))) + "/" + url.PathEscape(operationID) + "/initiate"
	if err := c.do(ctx, http.MethodPost, path, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ValidateCode(ctx context.Context, token *models.BearerToken, authorisationID, code string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	body := struct {
		Code string `json:"code"`
	}{Code: code}
	var res ScaResponse
	path := "/sca/" + url.PathEscape(authorisationID) + "/validate"
	if err := c.do(ctx, http.MethodPost, path, token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetSca(ctx context.Context, token *models.BearerToken, authorisationID string) (*ScaResponse, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	var res ScaResponse
	path := "/sca/" + url.PathEscape(authorisationID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ExecuteOperation(ctx context.Context, token *models.BearerToken, operationType models.OperationType, operationID string) (string, error) {
	if err := requireToken(token); err != nil {
		return "", err
	}
	var res struct {
		TransactionStatus string `json:"transaction_status"`
	}
	path := "/operations/" + url.PathEscape(strings.ToLower(string(operationType))) + "/" + url.PathEscape(operationID) + "/execute"
	if err := c.do(ctx, http.MethodPost, path, token, nil, &res); err != nil {
		return "", err
	}
	return res.TransactionStatus, nil
}

func (c *Client) MultilevelScaRequired(ctx context.Context, psuID string, ibans []string) (bool, error) {
	var res struct {
		MultilevelScaRequired bool `json:"multilevel_sca_required"`
	}
	query := url.Values{}
	query.Set("psu_id", psuID)
	query.Set("ibans", strings.Join(ibans, ","))
	if err := c.do(ctx, http.MethodGet, "/accounts/multilevel?"+query.Encode(), nil, nil, &res); err != nil {
		return false, err
	}
	return res.MultilevelScaRequired, nil
}

func requireToken(token *models.BearerToken) error {
	if token.Empty() {
		return dErrors.New(dErrors.CodeMissingCredentials, "bearer token required for backend call")
	}
	return nil
}

func (c *Client) recordOutcome(ctx context.Context, success bool) {
	if c.breaker == nil {
		return
	}
	if success {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "backend circuit closed", "breaker", c.breaker.Name())
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "backend circuit opened", "breaker", c.breaker.Name())
	}
}

// do performs one backend round trip. Non-2xx responses are translated into
// the authorisation error taxonomy; raw transport errors never escape either.
func (c *Client) do(ctx context.Context, method, path string, token *models.BearerToken, body, out any) error {
	if c.breaker != nil && !c.breaker.Allow() {
		return dErrors.New(dErrors.CodeTechnical, "backend circuit open")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode backend request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build backend request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !token.Empty() {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordOutcome(ctx, false)
		return dErrors.Wrap(err, dErrors.CodeTechnical, "backend unreachable")
	}
	defer resp.Body.Close()
	// Only infrastructure failures feed the breaker; 4xx answers are the
	// backend working as intended.
	c.recordOutcome(ctx, resp.StatusCode < 500)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeTechnical, "read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.DebugContext(ctx, "backend call failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return translateHTTP(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTechnical, fmt.Sprintf("decode backend %s %s response", method, path))
	}
	return nil
}
