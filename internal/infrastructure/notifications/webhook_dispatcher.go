package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/careroute/referral-agent/internal/domain/providers"
)

// WebhookDispatcher delivers referral notifications to an automation
// webhook as a multipart/form-data POST. Each Dispatch call is a single
// attempt with a bounded timeout; retries are the caller's decision.
type WebhookDispatcher struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookDispatcher creates a dispatcher for the given webhook URL.
func NewWebhookDispatcher(webhookURL string, timeout time.Duration) (*WebhookDispatcher, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("webhook URL must be set")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WebhookDispatcher{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Dispatch performs one webhook POST. The form carries the email fields;
// when the request has an attachment it is added as a PDF file part.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, req providers.NotificationRequest) (providers.DispatchResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"email":        req.Recipient,
		"subject":      req.Subject,
		"email_html":   req.Body,
		"content_type": "text/html",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return providers.DispatchResult{}, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if len(req.Attachment) > 0 {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, req.AttachmentName))
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		if err != nil {
			return providers.DispatchResult{}, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(req.Attachment); err != nil {
			return providers.DispatchResult{}, fmt.Errorf("failed to write attachment: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return providers.DispatchResult{}, fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, &body)
	if err != nil {
		return providers.DispatchResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return providers.DispatchResult{Detail: "webhook unreachable"}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return providers.DispatchResult{Detail: "unreadable webhook response"}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := fmt.Sprintf("webhook returned status %d", resp.StatusCode)
		return providers.DispatchResult{Detail: detail},
			fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return providers.DispatchResult{Delivered: true, Detail: fmt.Sprintf("webhook accepted (status %d)", resp.StatusCode)}, nil
}
