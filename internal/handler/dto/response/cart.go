package response

import (
	"madebuy/internal/usecase/queries"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	PieceID   uuid.UUID  `json:"piece_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Requested int32      `json:"requested"`
	// Available is -1 for unlimited pools.
	Available int64 `json:"available"`
	Valid     bool  `json:"valid"`
}

type CartValidationResponse struct {
	Valid bool               `json:"valid"`
	Lines []CartLineResponse `json:"items"`
}

func FromCartValidation(result *queries.CartValidationResult) *CartValidationResponse {
	lines := make([]CartLineResponse, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, CartLineResponse{
			PieceID:   l.PieceID,
			VariantID: l.VariantID,
			Requested: l.Requested,
			Available: l.Available,
			Valid:     l.Valid,
		})
	}
	return &CartValidationResponse{
		Valid: result.Valid,
		Lines: lines,
	}
}
