package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/newsletter-server/internal/model"
)

var _ model.EmailSender = (*APIClient)(nil)

// APIClient sends email through a Postmark-compatible HTTP API.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	sender     string
	token      string
}

func NewAPIClient(baseURL, sender, token string, timeout time.Duration) *APIClient {
	return &APIClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		token:   token,
	}
}

type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send posts e to {baseURL}/email. Any non-2xx answer is a delivery failure.
func (c *APIClient) Send(ctx context.Context, e model.Email) error {
	payload, err := json.Marshal(sendEmailRequest{
		From:     c.sender,
		To:       e.To,
		Subject:  e.Subject,
		HtmlBody: e.HTML,
		TextBody: e.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrEmailDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: provider responded with status %d", model.ErrEmailDelivery, resp.StatusCode)
	}
	return nil
}
