package notifications

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/careroute/referral-agent/internal/domain/providers"
)

// LogDispatcher is a stand-in dispatcher for local development when no
// webhook is configured. It logs the notification and reports success.
type LogDispatcher struct{}

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Dispatch logs the notification instead of sending it.
func (d *LogDispatcher) Dispatch(_ context.Context, req providers.NotificationRequest) (providers.DispatchResult, error) {
	log.Info().
		Str("recipient", req.Recipient).
		Str("subject", req.Subject).
		Int("body_bytes", len(req.Body)).
		Str("attachment", req.AttachmentName).
		Msg("Notification dispatch skipped (no webhook configured)")
	return providers.DispatchResult{Delivered: true, Detail: "logged only, no webhook configured"}, nil
}
