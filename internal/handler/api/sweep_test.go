//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"madebuy/internal/handler/api"
	resdto "madebuy/internal/handler/dto/response"
	"madebuy/internal/handler/middleware"
	"madebuy/tests/common/httptest"
	commandsmock "madebuy/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testSweepSecret = "test-sweep-secret"

type SweepHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSweepCommands
	handler      *api.SweepHandler
}

func (s *SweepHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSweepCommands(s.mockCtrl)
	s.handler = api.NewSweepHandler(s.mockCommands)

	s.router.POST("/jobs/reservations/sweep",
		middleware.RequireSweepSecret(testSweepSecret), s.handler.SweepExpired)
}

func (s *SweepHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSweepHandlerSuite(t *testing.T) {
	suite.Run(t, new(SweepHandlerTestSuite))
}

func (s *SweepHandlerTestSuite) TestSweepExpired() {
	url := "/jobs/reservations/sweep"

	s.Run("success: returns released count", func() {
		s.mockCommands.EXPECT().SweepExpired(gomock.Any()).Return(int64(4), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, testSweepSecret)

		var resp resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(4), resp.Released)
	})

	s.Run("error: missing secret returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: wrong secret returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "wrong-secret")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: sweep failure returns 500", func() {
		s.mockCommands.EXPECT().SweepExpired(gomock.Any()).Return(int64(0), errors.New("db down"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, testSweepSecret)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
