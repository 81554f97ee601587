package response

import (
	"time"

	"madebuy/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReservedLineResponse struct {
	PieceID   uuid.UUID  `json:"piece_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int32      `json:"quantity"`
	// ReservationID and ExpiresAt are absent for unlimited pools.
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	Unlimited     bool       `json:"unlimited,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type ReserveResponse struct {
	Lines []ReservedLineResponse `json:"lines"`
}

func FromReserveResult(result *commands.ReserveResult) *ReserveResponse {
	lines := make([]ReservedLineResponse, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, ReservedLineResponse{
			PieceID:       l.PieceID,
			VariantID:     l.VariantID,
			Quantity:      l.Quantity,
			ReservationID: l.ReservationID,
			Unlimited:     l.Unlimited,
			ExpiresAt:     l.ExpiresAt,
		})
	}
	return &ReserveResponse{Lines: lines}
}

type InsufficientLineResponse struct {
	PieceID   uuid.UUID  `json:"piece_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Requested int32      `json:"requested"`
	Available int64      `json:"available"`
}

type InsufficientStockResponse struct {
	Error string                     `json:"error"`
	Lines []InsufficientLineResponse `json:"lines"`
}

func FromInsufficientStock(e *commands.InsufficientStockError) *InsufficientStockResponse {
	lines := make([]InsufficientLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, InsufficientLineResponse{
			PieceID:   l.PieceID,
			VariantID: l.VariantID,
			Requested: l.Requested,
			Available: l.Available,
		})
	}
	return &InsufficientStockResponse{
		Error: "insufficient stock",
		Lines: lines,
	}
}

type SweepResponse struct {
	Released int64 `json:"released"`
}
