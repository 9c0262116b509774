//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/handler/api"
	"salon-backoffice/internal/handler/middleware"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/queries"
	"salon-backoffice/tests/common/httptest"
	commandsmock "salon-backoffice/tests/mock/commands"
	queriesmock "salon-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SettingsHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCommands  *commandsmock.MockSettingsCommands
	mockQueries   *queriesmock.MockSettingsQueries
	mockGiftCards *queriesmock.MockGiftCardQueries
}

func (s *SettingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSettingsCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSettingsQueries(s.mockCtrl)
	s.mockGiftCards = queriesmock.NewMockGiftCardQueries(s.mockCtrl)

	settings := api.NewSettingsHandler(s.mockCommands, s.mockQueries)
	giftCards := api.NewGiftCardHandler(s.mockGiftCards)

	s.router.GET("/settings/loyalty", settings.GetLoyaltySettings)
	s.router.PUT("/settings/loyalty", settings.UpdateLoyaltySettings)
	s.router.GET("/gift-cards/:code", giftCards.VerifyGiftCard)
}

func (s *SettingsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSettingsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}

func (s *SettingsHandlerTestSuite) TestGetLoyaltySettings() {
	s.Run("success: returns the current settings", func() {
		s.mockQueries.EXPECT().GetSettings(gomock.Any()).Return(loyalty.DefaultSettings(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/settings/loyalty", nil, "")

		var response loyalty.Settings
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(5, response.ServiceThreshold)
		s.Equal("20.00", response.ServiceDiscount.String())
	})

	s.Run("error: 500 when settings cannot be read", func() {
		s.mockQueries.EXPECT().GetSettings(gomock.Any()).
			Return(loyalty.Settings{}, errs.Mark(errors.New("conn refused"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/settings/loyalty", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *SettingsHandlerTestSuite) TestUpdateLoyaltySettings() {
	s.Run("success: omitted fields keep their stored value", func() {
		s.mockQueries.EXPECT().GetSettings(gomock.Any()).Return(loyalty.DefaultSettings(), nil).Times(1)
		s.mockCommands.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in loyalty.Settings) (loyalty.Settings, error) {
				s.Equal(4, in.ServiceThreshold)
				s.Equal("25.00", in.ServiceDiscount.String())
				s.Equal(2, in.PackageThreshold)
				s.Equal("40.00", in.PackageDiscount.String())
				return in, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/settings/loyalty", map[string]any{
			"serviceThreshold": 4,
			"serviceDiscount":  25,
		}, "")

		var response loyalty.Settings
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(4, response.ServiceThreshold)
	})

	s.Run("error: 400 Bad Request on a zero threshold", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/settings/loyalty", map[string]any{
			"packageThreshold": 0,
		}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request when the merged settings are invalid", func() {
		s.mockQueries.EXPECT().GetSettings(gomock.Any()).Return(loyalty.DefaultSettings(), nil).Times(1)
		s.mockCommands.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).
			Return(loyalty.Settings{}, loyalty.ErrInvalidSettings).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/settings/loyalty", map[string]any{
			"birthdayDiscount": -5,
		}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *SettingsHandlerTestSuite) TestVerifyGiftCard() {
	s.Run("success: usable card", func() {
		expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		s.mockGiftCards.EXPECT().VerifyGiftCard(gomock.Any(), "GIFT-0001").
			Return(&queries.GiftCardView{Code: "GIFT-0001", Status: "active", Valid: true, ExpiresAt: &expires}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/gift-cards/GIFT-0001", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"valid":true`)
	})

	s.Run("success: expired card reports the reason", func() {
		s.mockGiftCards.EXPECT().VerifyGiftCard(gomock.Any(), "OLD-0001").
			Return(&queries.GiftCardView{Code: "OLD-0001", Status: "active", Valid: false, Reason: "gift card has expired"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/gift-cards/OLD-0001", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"reason":"gift card has expired"`)
	})

	s.Run("error: 404 Not Found for unknown code", func() {
		s.mockGiftCards.EXPECT().VerifyGiftCard(gomock.Any(), "NOPE-0001").
			Return(nil, errs.Mark(errs.Mark(errs.New("no rows"), errs.ErrGiftCardNotFound), errs.ErrGiftCardInvalid)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/gift-cards/NOPE-0001", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Gift card not found")
	})
}
