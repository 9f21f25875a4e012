// Package consentmgmt pushes best-effort status updates to the consent
// management system. Notification is advisory: it refreshes a cache on the
// consent side, it is not part of the authorisation contract, so failures are
// logged and swallowed.
package consentmgmt

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Notifier posts status changes keyed by operation id. The zero-value-like
// disabled form (empty base URL) is valid and does nothing.
type Notifier struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewNotifier(baseURL string, httpClient *http.Client, logger *slog.Logger) *Notifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Notifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type statusUpdate struct {
	Status string `json:"status"`
}

// NotifyStatus fires one status update and never returns an error. Callers
// must not gate authorisation progress on it.
func (n *Notifier) NotifyStatus(ctx context.Context, operationID, status string) {
	if n.baseURL == "" {
		return
	}

	body, err := json.Marshal(statusUpdate{Status: normalize(status)})
	if err != nil {
		n.logger.WarnContext(ctx, "consent status notification dropped", "operation_id", operationID, "error", err)
		return
	}

	endpoint := n.baseURL + "/operations/" + url.PathEscape(operationID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		n.logger.WarnContext(ctx, "consent status notification dropped", "operation_id", operationID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		n.logger.WarnContext(ctx, "consent status notification failed", "operation_id", operationID, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.WarnContext(ctx, "consent status notification rejected",
			"operation_id", operationID,
			"status_code", resp.StatusCode,
		)
	}
}

// normalize maps backend status spellings onto the lowercase form consent
// management expects.
func normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
