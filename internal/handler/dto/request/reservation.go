package request

import (
	"madebuy/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveLineRequest struct {
	PieceID   uuid.UUID  `json:"piece_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int32      `json:"quantity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	TenantID  uuid.UUID            `json:"tenant_id" binding:"required"`
	SessionID string               `json:"session_id" binding:"required"`
	Lines     []ReserveLineRequest `json:"lines" binding:"required,min=1,max=100,dive"`
}

func (r CreateReservationRequest) ToCommand() []commands.LineRequest {
	lines := make([]commands.LineRequest, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, commands.LineRequest{
			PieceID:   l.PieceID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return lines
}

type FinalizeReservationRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}
