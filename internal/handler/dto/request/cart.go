package request

import (
	"madebuy/internal/usecase/queries"

	"github.com/google/uuid"
)

type CartLineRequest struct {
	PieceID   uuid.UUID  `json:"piece_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int32      `json:"quantity" binding:"required,min=1"`
}

type ValidateCartRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	// SessionID is optional: anonymous shoppers validate without a checkout
	// session, so no self-exclusion applies.
	SessionID string            `json:"session_id,omitempty"`
	Lines     []CartLineRequest `json:"items" binding:"required,min=1,max=100,dive"`
}

func (r ValidateCartRequest) ToQuery() []queries.CartLine {
	lines := make([]queries.CartLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, queries.CartLine{
			PieceID:   l.PieceID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return lines
}
