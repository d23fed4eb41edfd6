package providers

import (
	"context"
)

// NotificationRequest carries everything the dispatcher needs for one
// outbound send. Attachment and AttachmentName are optional; an empty
// attachment means the notification goes out without a document.
type NotificationRequest struct {
	Recipient      string
	Subject        string
	Body           string
	Attachment     []byte
	AttachmentName string
}

// DispatchResult is the structured outcome of a single send attempt
type DispatchResult struct {
	Delivered bool   `json:"delivered"`
	Detail    string `json:"detail,omitempty"`
}

// NotificationDispatcher performs a single outbound send attempt with a
// bounded timeout. It never retries internally and never panics past its
// boundary: transport failures come back as an error alongside a result
// describing what happened.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, req NotificationRequest) (DispatchResult, error)
}
