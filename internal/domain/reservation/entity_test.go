//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"madebuy/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T, now time.Time, ttl time.Duration) *reservation.Reservation {
	t.Helper()

	qty, err := reservation.NewQuantity(2)
	require.NoError(t, err)
	session, err := reservation.NewSessionID("sess-123")
	require.NoError(t, err)

	res, err := reservation.NewReservation(
		uuid.New(),
		reservation.Line{PieceID: uuid.New()},
		qty,
		session,
		now,
		ttl,
	)
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		res := newTestReservation(t, now, 10*time.Minute)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, reservation.StatusActive, res.Status())
		assert.True(t, res.IsActive())
		assert.Equal(t, now, res.CreatedAt())
		assert.Equal(t, now.Add(10*time.Minute), res.ExpiresAt())
		assert.Equal(t, int32(2), res.Quantity().Value())
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		qty, err := reservation.NewQuantity(1)
		require.NoError(t, err)
		session, err := reservation.NewSessionID("sess-123")
		require.NoError(t, err)

		_, err = reservation.NewReservation(uuid.Nil, reservation.Line{PieceID: uuid.New()}, qty, session, now, time.Minute)
		assert.ErrorIs(t, err, reservation.ErrInvalidTenant)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		qty, err := reservation.NewQuantity(1)
		require.NoError(t, err)
		session, err := reservation.NewSessionID("sess-123")
		require.NoError(t, err)

		_, err = reservation.NewReservation(uuid.New(), reservation.Line{PieceID: uuid.New()}, qty, session, now, 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidTTL)
	})
}

func TestQuantity(t *testing.T) {
	testCases := []struct {
		name  string
		value int32
		errIs error
	}{
		{name: "minimum valid quantity", value: 1},
		{name: "typical quantity", value: 5},
		{name: "zero quantity", value: 0, errIs: reservation.ErrInvalidQuantity},
		{name: "negative quantity", value: -3, errIs: reservation.ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := reservation.NewQuantity(tc.value)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.value, q.Value())
		})
	}
}

func TestSessionID(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		s, err := reservation.NewSessionID("  sess-9  ")
		require.NoError(t, err)
		assert.Equal(t, "sess-9", s.String())
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := reservation.NewSessionID("   ")
		assert.ErrorIs(t, err, reservation.ErrEmptySessionID)
	})

	t.Run("rejects over maximum length", func(t *testing.T) {
		_, err := reservation.NewSessionID(strings.Repeat("a", reservation.MaxSessionIDLength+1))
		assert.ErrorIs(t, err, reservation.ErrSessionIDTooLong)
	})
}

func TestLineKey(t *testing.T) {
	pieceID := uuid.New()
	variantID := uuid.New()

	base := reservation.Line{PieceID: pieceID}
	variant := reservation.Line{PieceID: pieceID, VariantID: &variantID}

	assert.NotEqual(t, base.Key(), variant.Key(), "variant pool must be distinct from base pool")
	assert.Equal(t, base.Key(), reservation.Line{PieceID: pieceID}.Key())
}

func TestStatusTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("active to released", func(t *testing.T) {
		res := newTestReservation(t, now, time.Minute)
		require.NoError(t, res.Release())
		assert.Equal(t, reservation.StatusReleased, res.Status())
	})

	t.Run("active to consumed", func(t *testing.T) {
		res := newTestReservation(t, now, time.Minute)
		require.NoError(t, res.Consume())
		assert.Equal(t, reservation.StatusConsumed, res.Status())
	})

	t.Run("release is idempotent on terminal state", func(t *testing.T) {
		res := newTestReservation(t, now, time.Minute)
		require.NoError(t, res.Release())
		require.NoError(t, res.Release())
		assert.Equal(t, reservation.StatusReleased, res.Status())

		// A consumed hold also no-ops (payment callbacks can be retried).
		consumed := newTestReservation(t, now, time.Minute)
		require.NoError(t, consumed.Consume())
		require.NoError(t, consumed.Release())
		assert.Equal(t, reservation.StatusConsumed, consumed.Status())
	})

	t.Run("consume is idempotent when already consumed", func(t *testing.T) {
		res := newTestReservation(t, now, time.Minute)
		require.NoError(t, res.Consume())
		require.NoError(t, res.Consume())
		assert.Equal(t, reservation.StatusConsumed, res.Status())
	})

	t.Run("consume on released reservation stays released", func(t *testing.T) {
		res := newTestReservation(t, now, time.Minute)
		require.NoError(t, res.Release())
		require.NoError(t, res.Consume())
		assert.Equal(t, reservation.StatusReleased, res.Status())
	})
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	res := newTestReservation(t, now, 10*time.Minute)

	assert.False(t, res.IsExpired(now.Add(5*time.Minute)))
	assert.True(t, res.IsExpired(now.Add(11*time.Minute)))

	assert.True(t, res.CountsAgainstStock(now.Add(5*time.Minute)))
	assert.False(t, res.CountsAgainstStock(now.Add(11*time.Minute)), "expired hold must not count even before the sweeper runs")

	require.NoError(t, res.Release())
	assert.False(t, res.CountsAgainstStock(now))
}
