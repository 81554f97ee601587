//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"madebuy/internal/handler/dto/request"
	"madebuy/internal/handler/dto/response"
	"madebuy/internal/pkg/jwt"
	"madebuy/tests/common/dbtest"
	"madebuy/tests/common/httptest"
	"madebuy/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reserveURL  = "/api/internal/reservations"
	finalizeURL = "/api/internal/reservations/%s/%s"
	validateURL = "/api/storefront/cart/validate"
	sweepURL    = "/api/jobs/reservations/sweep"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) serviceToken(scopes ...string) string {
	svc := jwt.NewService(s.Config.Auth.ServiceTokenSecret, time.Hour)
	token, err := svc.GenerateToken("e2e-caller", scopes)
	require.NoError(s.T(), err)
	return token
}

func (s *ReservationSuite) reserve(tenantID uuid.UUID, sessionID string, lines []request.ReserveLineRequest, token string) *response.ReserveResponse {
	body := request.CreateReservationRequest{TenantID: tenantID, SessionID: sessionID, Lines: lines}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reserveURL, body, token)

	var resp response.ReserveResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
	return &resp
}

// =============================================================================
// TestReserve - Reservation writer API tests
// =============================================================================

func (s *ReservationSuite) TestReserve() {
	s.Run("Normal case: holds stock and returns reservation ids", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(3))

		resp := s.reserve(tenantID, "session-1", []request.ReserveLineRequest{
			{PieceID: pieceID, Quantity: 2},
		}, token)

		require.Len(t, resp.Lines, 1)
		require.NotNil(t, resp.Lines[0].ReservationID)
		require.NotNil(t, resp.Lines[0].ExpiresAt)

		var status string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM stock_reservations WHERE id = $1", *resp.Lines[0].ReservationID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "active", status)
	})

	s.Run("Normal case: unlimited pool returns no hold", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "made-to-order-studio")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "commissioned portrait", nil)

		resp := s.reserve(tenantID, "session-1", []request.ReserveLineRequest{
			{PieceID: pieceID, Quantity: 99},
		}, token)

		require.Len(t, resp.Lines, 1)
		require.True(t, resp.Lines[0].Unlimited)
		require.Nil(t, resp.Lines[0].ReservationID)
	})

	s.Run("Normal case: variant pools are independent of the parent piece", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "linen scarf", dbtest.StockOf(2))
		blueID := dbtest.CreateTestVariant(t, s.DB, tenantID, pieceID, "indigo", dbtest.StockOf(1))
		redID := dbtest.CreateTestVariant(t, s.DB, tenantID, pieceID, "madder", dbtest.StockOf(1))

		s.reserve(tenantID, "session-1", []request.ReserveLineRequest{
			{PieceID: pieceID, VariantID: &blueID, Quantity: 1},
		}, token)

		// The sibling variant's single unit is untouched.
		s.reserve(tenantID, "session-2", []request.ReserveLineRequest{
			{PieceID: pieceID, VariantID: &redID, Quantity: 1},
		}, token)

		// But the blue pool is now exhausted for other sessions.
		body := request.CreateReservationRequest{
			TenantID: tenantID, SessionID: "session-3",
			Lines: []request.ReserveLineRequest{{PieceID: pieceID, VariantID: &blueID, Quantity: 1}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, body, token)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	s.Run("Error case: insufficient stock is all-or-nothing", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		plenty := dbtest.CreateTestPiece(t, s.DB, tenantID, "postcard set", dbtest.StockOf(50))
		scarce := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		body := request.CreateReservationRequest{
			TenantID:  tenantID,
			SessionID: "session-1",
			Lines: []request.ReserveLineRequest{
				{PieceID: plenty, Quantity: 2},
				{PieceID: scarce, Quantity: 2},
			},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, body, token)
		require.Equal(t, http.StatusConflict, rec.Code)

		var conflict response.InsufficientStockResponse
		require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &conflict))
		require.Len(t, conflict.Lines, 1)
		require.Equal(t, scarce, conflict.Lines[0].PieceID)
		require.Equal(t, int64(1), conflict.Lines[0].Available)

		// No partial hold on the satisfiable line either.
		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM stock_reservations WHERE tenant_id = $1 AND status = 'active'", tenantID).Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	s.Run("Normal case: same session re-reserve replaces the prior hold", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		line := []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}
		s.reserve(tenantID, "session-1", line, token)
		// Second attempt by the same session must not fail against its own hold.
		s.reserve(tenantID, "session-1", line, token)

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM stock_reservations WHERE tenant_id = $1 AND status = 'active'", tenantID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	s.Run("Error case: missing checkout scope returns 403", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeOrders)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(3))

		body := request.CreateReservationRequest{
			TenantID: tenantID, SessionID: "session-1",
			Lines: []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, body, token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

// =============================================================================
// TestConcurrentReserve - two sessions race for the last unit
// =============================================================================

func (s *ReservationSuite) TestConcurrentReserve() {
	s.Run("Exactly one of two racing sessions wins the last unit", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				body := request.CreateReservationRequest{
					TenantID:  tenantID,
					SessionID: fmt.Sprintf("racer-%d", i),
					Lines:     []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}},
				}
				rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveURL, body, token)
				codes[i] = rec.Code
			}()
		}
		wg.Wait()

		wins, losses := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				wins++
			case http.StatusConflict:
				losses++
			}
		}
		require.Equal(t, 1, wins, "statuses: %v", codes)
		require.Equal(t, 1, losses, "statuses: %v", codes)

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM stock_reservations WHERE tenant_id = $1 AND status = 'active'", tenantID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}

// =============================================================================
// TestValidateCart - read-only availability
// =============================================================================

func (s *ReservationSuite) TestValidateCart() {
	s.Run("Normal case: reserved units reduce reported availability", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(5))

		s.reserve(tenantID, "holder", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 3}}, token)

		body := request.ValidateCartRequest{
			TenantID:  tenantID,
			SessionID: "browser",
			Lines:     []request.CartLineRequest{{PieceID: pieceID, Quantity: 4}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)

		expected := response.CartValidationResponse{
			Valid: false,
			Lines: []response.CartLineResponse{
				{PieceID: pieceID, Requested: 4, Available: 2, Valid: false},
			},
		}
		require.Empty(t, cmp.Diff(expected, resp))
	})

	s.Run("Normal case: a session is not counted against itself", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		s.reserve(tenantID, "holder", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, token)

		body := request.ValidateCartRequest{
			TenantID:  tenantID,
			SessionID: "holder",
			Lines:     []request.CartLineRequest{{PieceID: pieceID, Quantity: 1}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.True(t, resp.Valid)
	})

	s.Run("Normal case: unlimited pool reports -1", func() {
		t := s.T()

		tenantID := dbtest.CreateTestTenant(t, s.DB, "made-to-order-studio")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "commissioned portrait", nil)

		body := request.ValidateCartRequest{
			TenantID:  tenantID,
			SessionID: "browser",
			Lines:     []request.CartLineRequest{{PieceID: pieceID, Quantity: 500}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.True(t, resp.Valid)
		require.Equal(t, int64(-1), resp.Lines[0].Available)
	})

	s.Run("Normal case: removed listing invalidates only its line", func() {
		t := s.T()

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(5))

		body := request.ValidateCartRequest{
			TenantID:  tenantID,
			SessionID: "browser",
			Lines: []request.CartLineRequest{
				{PieceID: pieceID, Quantity: 1},
				{PieceID: uuid.New(), Quantity: 1},
			},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.False(t, resp.Valid)
		require.True(t, resp.Lines[0].Valid)
		require.False(t, resp.Lines[1].Valid)
		require.Equal(t, int64(0), resp.Lines[1].Available)
	})

	s.Run("Normal case: anonymous request without a session is accepted", func() {
		t := s.T()

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(5))

		body := request.ValidateCartRequest{
			TenantID: tenantID,
			Lines:    []request.CartLineRequest{{PieceID: pieceID, Quantity: 2}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.True(t, resp.Valid)
		require.Equal(t, int64(5), resp.Lines[0].Available)
	})

	s.Run("Normal case: holds under one tenant never affect another", func() {
		t := s.T()
		token := s.serviceToken(jwt.ScopeCheckout)

		tenantA := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		tenantB := dbtest.CreateTestTenant(t, s.DB, "atelier-jun")
		pieceA := dbtest.CreateTestPiece(t, s.DB, tenantA, "ceramic vase", dbtest.StockOf(2))
		pieceB := dbtest.CreateTestPiece(t, s.DB, tenantB, "ceramic vase", dbtest.StockOf(2))

		s.reserve(tenantA, "shopper-a", []request.ReserveLineRequest{{PieceID: pieceA, Quantity: 2}}, token)

		body := request.ValidateCartRequest{
			TenantID:  tenantB,
			SessionID: "shopper-b",
			Lines:     []request.CartLineRequest{{PieceID: pieceB, Quantity: 2}},
		}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, body, "")

		var resp response.CartValidationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.True(t, resp.Valid)
		require.Equal(t, int64(2), resp.Lines[0].Available)

		granted := s.reserve(tenantB, "shopper-b", []request.ReserveLineRequest{{PieceID: pieceB, Quantity: 2}}, token)
		require.Len(t, granted.Lines, 1)
	})
}

// =============================================================================
// TestFinalize - consume / release hooks
// =============================================================================

func (s *ReservationSuite) TestFinalize() {
	s.Run("Normal case: consume is idempotent across redeliveries", func() {
		t := s.T()
		checkoutToken := s.serviceToken(jwt.ScopeCheckout)
		ordersToken := s.serviceToken(jwt.ScopeOrders)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(3))

		resp := s.reserve(tenantID, "session-1", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
		reservationID := *resp.Lines[0].ReservationID

		url := fmt.Sprintf(finalizeURL, reservationID, "consume")
		body := request.FinalizeReservationRequest{TenantID: tenantID}

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, url, body, ordersToken)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// Payment provider redelivers the callback.
		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, url, body, ordersToken)
		require.Equal(t, http.StatusNoContent, rec.Code)

		var status string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM stock_reservations WHERE id = $1", reservationID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "consumed", status)
	})

	s.Run("Normal case: release frees the unit for other sessions", func() {
		t := s.T()
		checkoutToken := s.serviceToken(jwt.ScopeCheckout)
		ordersToken := s.serviceToken(jwt.ScopeOrders)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		resp := s.reserve(tenantID, "session-1", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
		reservationID := *resp.Lines[0].ReservationID

		url := fmt.Sprintf(finalizeURL, reservationID, "release")
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			request.FinalizeReservationRequest{TenantID: tenantID}, ordersToken)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// Another session can now take the unit.
		s.reserve(tenantID, "session-2", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
	})

	s.Run("Error case: wrong tenant cannot touch the reservation", func() {
		t := s.T()
		checkoutToken := s.serviceToken(jwt.ScopeCheckout)
		ordersToken := s.serviceToken(jwt.ScopeOrders)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		otherTenant := dbtest.CreateTestTenant(t, s.DB, "someone-else")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "ceramic vase", dbtest.StockOf(3))

		resp := s.reserve(tenantID, "session-1", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
		reservationID := *resp.Lines[0].ReservationID

		url := fmt.Sprintf(finalizeURL, reservationID, "consume")
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			request.FinalizeReservationRequest{TenantID: otherTenant}, ordersToken)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// =============================================================================
// TestSweep - expiry sweep job
// =============================================================================

func (s *ReservationSuite) TestSweep() {
	s.Run("Normal case: expired holds are released and the unit is reusable", func() {
		t := s.T()
		checkoutToken := s.serviceToken(jwt.ScopeCheckout)

		tenantID := dbtest.CreateTestTenant(t, s.DB, "atelier-klara")
		pieceID := dbtest.CreateTestPiece(t, s.DB, tenantID, "one-off brooch", dbtest.StockOf(1))

		resp := s.reserve(tenantID, "quitter", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
		reservationID := *resp.Lines[0].ReservationID

		// Force the hold past its expiry.
		_, err := s.DB.Exec(context.Background(),
			"UPDATE stock_reservations SET expires_at = now() - interval '1 minute' WHERE id = $1", reservationID)
		require.NoError(t, err)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, s.Config.Sweep.Secret)
		var sweepResp response.SweepResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &sweepResp)
		require.Equal(t, int64(1), sweepResp.Released)

		// Immediately repeated run cleans zero.
		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, s.Config.Sweep.Secret)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &sweepResp)
		require.Zero(t, sweepResp.Released)

		// The unit is available again.
		s.reserve(tenantID, "patient-shopper", []request.ReserveLineRequest{{PieceID: pieceID, Quantity: 1}}, checkoutToken)
	})

	s.Run("Error case: wrong sweep secret returns 401", func() {
		t := s.T()
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, "not-the-secret")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
