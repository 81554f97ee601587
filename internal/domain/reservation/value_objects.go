package reservation

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptySessionID  = errors.New("session id must not be empty")
	ErrSessionIDTooLong = errors.New("session id exceeds maximum length")
)

const MaxSessionIDLength = 128

type Quantity struct {
	value int32
}

func NewQuantity(value int32) (Quantity, error) {
	if value < 1 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int32 {
	return q.value
}

// SessionID is the opaque shopper-session identifier issued by the
// storefront. It is validated for shape only, never interpreted.
type SessionID struct {
	value string
}

func NewSessionID(value string) (SessionID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return SessionID{}, ErrEmptySessionID
	}
	if len(trimmed) > MaxSessionIDLength {
		return SessionID{}, ErrSessionIDTooLong
	}
	return SessionID{value: trimmed}, nil
}

func (s SessionID) String() string {
	return s.value
}

// Line identifies one stock pool: a piece, or a specific variant of it.
type Line struct {
	PieceID   uuid.UUID
	VariantID *uuid.UUID
}

// Key is a stable identity for the stock pool, used for duplicate detection
// and for deterministic lock ordering across multi-line carts.
func (l Line) Key() string {
	if l.VariantID == nil {
		return l.PieceID.String()
	}
	return l.PieceID.String() + "/" + l.VariantID.String()
}
