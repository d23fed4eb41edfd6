package providers

import (
	"context"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

// DocumentRenderer turns a recommendation into a printable referral form.
// The pipeline treats the document as an opaque blob plus a filename; a
// rendering failure is degraded-mode input for dispatch, not a pipeline
// fault.
type DocumentRenderer interface {
	RenderReferralForm(ctx context.Context, rec entities.ReferralRecommendation) (data []byte, filename string, err error)
}
