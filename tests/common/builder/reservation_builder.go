//go:build unit || e2e

package builder

import (
	"time"

	domres "madebuy/internal/domain/reservation"
	reqdto "madebuy/internal/handler/dto/request"
	"madebuy/internal/usecase/commands"
	"madebuy/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	TenantID  uuid.UUID
	PieceID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  int32
	SessionID string
	CreatedAt time.Time
	TTL       time.Duration
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		TenantID:  uuid.New(),
		PieceID:   uuid.New(),
		Quantity:  2,
		SessionID: "cart-session-1",
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		TTL:       10 * time.Minute,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	qty, err := domres.NewQuantity(b.Quantity)
	if err != nil {
		return nil, err
	}
	session, err := domres.NewSessionID(b.SessionID)
	if err != nil {
		return nil, err
	}
	line := domres.Line{PieceID: b.PieceID, VariantID: b.VariantID}
	return domres.NewReservation(b.TenantID, line, qty, session, b.CreatedAt, b.TTL)
}

// BuildDomainWithStatus rehydrates a reservation in the given state, the way
// the repository does when reading a row back.
func (b *ReservationBuilder) BuildDomainWithStatus(id uuid.UUID, status domres.Status) (*domres.Reservation, error) {
	qty, err := domres.NewQuantity(b.Quantity)
	if err != nil {
		return nil, err
	}
	session, err := domres.NewSessionID(b.SessionID)
	if err != nil {
		return nil, err
	}
	line := domres.Line{PieceID: b.PieceID, VariantID: b.VariantID}
	return domres.ReconstructReservation(id, b.TenantID, line, qty, session, status, b.CreatedAt, b.CreatedAt.Add(b.TTL))
}

func (b *ReservationBuilder) BuildLine() domres.Line {
	return domres.Line{PieceID: b.PieceID, VariantID: b.VariantID}
}

func (b *ReservationBuilder) BuildLineRequest() commands.LineRequest {
	return commands.LineRequest{
		PieceID:   b.PieceID,
		VariantID: b.VariantID,
		Quantity:  b.Quantity,
	}
}

func (b *ReservationBuilder) BuildCartLine() queries.CartLine {
	return queries.CartLine{
		PieceID:   b.PieceID,
		VariantID: b.VariantID,
		Quantity:  b.Quantity,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		TenantID:  b.TenantID,
		SessionID: b.SessionID,
		Lines: []reqdto.ReserveLineRequest{
			{PieceID: b.PieceID, VariantID: b.VariantID, Quantity: b.Quantity},
		},
	}
}

func (b *ReservationBuilder) BuildValidateRequestDTO() reqdto.ValidateCartRequest {
	return reqdto.ValidateCartRequest{
		TenantID:  b.TenantID,
		SessionID: b.SessionID,
		Lines: []reqdto.CartLineRequest{
			{PieceID: b.PieceID, VariantID: b.VariantID, Quantity: b.Quantity},
		},
	}
}
