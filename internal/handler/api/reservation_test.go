//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"salon-backoffice/internal/domain/staff"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/handler/api"
	resdto "salon-backoffice/internal/handler/dto/response"
	"salon-backoffice/internal/handler/middleware"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"
	"salon-backoffice/internal/usecase/shared"
	"salon-backoffice/tests/common/builder"
	"salon-backoffice/tests/common/httptest"
	"salon-backoffice/tests/common/testutil"
	commandsmock "salon-backoffice/tests/mock/commands"
	queriesmock "salon-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockValidation *commandsmock.MockValidationCommands
	mockPayments   *commandsmock.MockPaymentCommands
	mockQueries    *queriesmock.MockReservationQueries
	mockPreview    *queriesmock.MockPreviewQueries
	handler        *api.ReservationHandler
	actorID        uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidation = commandsmock.NewMockValidationCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockPreview = queriesmock.NewMockPreviewQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockValidation, s.mockPayments, s.mockQueries, s.mockPreview)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", staff.RoleOperator)
		c.Next()
	}

	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.POST("/reservations/:id/validation/preview", authMiddleware, s.handler.PreviewValidation)
	s.router.POST("/reservations/:id/validation", authMiddleware, s.handler.ValidateReservation)
	s.router.POST("/reservations/:id/payment-link", authMiddleware, s.handler.CreatePaymentLink)
	s.router.DELETE("/reservations/:id/payment", authMiddleware, s.handler.CancelPendingPayment)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseValidation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *ReservationHandlerTestSuite) performValidation(path string, body any, key string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, body, "bearer-token", map[string]string{
		"Idempotency-Key": key,
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	b := builder.NewReservationBuilder()

	s.Run("success: returns 200 OK with the reservation", func() {
		s.mockQueries.EXPECT().GetReservation(gomock.Any(), b.ID).
			Return(b.BuildViewQuery(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+b.ID.String(), nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(b.ID, response.ID)
		s.Equal("confirmed", response.Status)
		s.Equal("80.00", response.TotalPrice.String())
		s.Contains(rec.Body.String(), `"services":"Soin Hydro'Naissance"`)
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for unknown reservation", func() {
		s.mockQueries.EXPECT().GetReservation(gomock.Any(), b.ID).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+b.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+b.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestPreviewValidation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestPreviewValidation() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String() + "/validation/preview"
	view := &queries.PreviewView{ReservationID: b.ID, DefaultKeys: []string{"individual:Fidélité 5 soins: -20€"}}

	s.Run("success: empty body keeps the automatic offers", func() {
		s.mockPreview.EXPECT().Preview(gomock.Any(), b.ID, shared.SelectionInput{}).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response queries.PreviewView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.DefaultKeys, response.DefaultKeys)
	})

	s.Run("success: explicit empty selection is forwarded as empty, not nil", func() {
		s.mockPreview.EXPECT().Preview(gomock.Any(), b.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, in shared.SelectionInput) (*queries.PreviewView, error) {
				s.NotNil(in.SelectedOffers)
				s.Empty(in.SelectedOffers)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"selectedOffers": []string{}}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps gift card errors", func() {
		s.mockPreview.EXPECT().Preview(gomock.Any(), b.ID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("expired"), errs.ErrGiftCardInvalid)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"giftCard": map[string]any{"code": "GIFT-0001"},
		}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Gift card cannot be used")
	})
}

// ================================================================================
// TestValidateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestValidateReservation() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String() + "/validation"
	reqBody := b.BuildValidateRequestDTO()
	key := uuid.New()

	s.Run("success: returns 200 OK with the validation result", func() {
		s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, in commands.ValidateInput, _, _ uuid.UUID) (*commands.ValidationOutcome, error) {
				s.Require().NotNil(in.Attended)
				s.True(*in.Attended)
				s.Equal("cash", in.PaymentMethod)
				s.Nil(in.SelectedOffers)
				return b.BuildOutcome(), nil
			}).Times(1)

		rec := s.performValidation(url, reqBody, key.String())

		var response resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("completed", response.Status)
		s.Equal("paid", response.PaymentStatus)
		s.Equal("FAC-202603-0001", response.InvoiceNumber)
		s.False(response.Replayed)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: replay sets the Idempotent-Replayed header", func() {
		outcome := b.BuildOutcome()
		outcome.IsReplayed = true
		s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
			Return(outcome, nil).Times(1)

		rec := s.performValidation(url, reqBody, key.String())

		var response resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: online payment returns the checkout url", func() {
		s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
			Return(b.BuildOnlineOutcome(), nil).Times(1)

		rec := s.performValidation(url, reqBody, key.String())

		var response resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pending", response.PaymentStatus)
		s.Equal("https://pay.example.test/cs_test_1", response.PaymentLinkURL)
		s.Empty(response.Warning)
	})

	s.Run("success: stored validation with failed link returns a warning", func() {
		outcome := b.BuildOnlineOutcome()
		outcome.PaymentLink = nil
		s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
			Return(outcome, errs.Mark(errs.New("stripe down"), errs.ErrPaymentLinkFailed)).Times(1)

		rec := s.performValidation(url, reqBody, key.String())

		var response resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pending", response.PaymentStatus)
		s.Empty(response.PaymentLinkURL)
		s.NotEmpty(response.Warning)
	})

	s.Run("error: 400 Bad Request without Idempotency-Key", func() {
		rec := s.performValidation(url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header required")
	})

	s.Run("error: 400 Bad Request on malformed Idempotency-Key", func() {
		rec := s.performValidation(url, reqBody, "not-a-uuid")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseValidation{
			{name: "notes length OK (1000 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 1000)), expectCode: http.StatusOK},
			{name: "notes length invalid (1001 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 1001)), expectCode: http.StatusBadRequest},
			{name: "manual discount without reason", mutate: testutil.Field("manualDiscounts", []map[string]any{{"amount": 5}}), expectCode: http.StatusBadRequest},
			{name: "manual discount with reason", mutate: testutil.Field("manualDiscounts", []map[string]any{{"amount": 5, "reason": "Geste commercial"}}), expectCode: http.StatusOK},
			{name: "gift card without code", mutate: testutil.Field("giftCard", map[string]any{"amount": 5}), expectCode: http.StatusBadRequest},
			{name: "amount is not a number", mutate: testutil.Field("manualDiscounts", []map[string]any{{"amount": "abc", "reason": "x"}}), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusOK {
					s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
						Return(b.BuildOutcome(), nil).Times(1)
				}
				rec := s.performValidation(url, requestMap, key.String())
				if tc.expectCode == http.StatusOK {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"pending online payment", validation.ErrPendingPayment, http.StatusConflict, "awaiting confirmation"},
			{"unanswered attendance", validation.ErrAttendanceUnanswered, http.StatusUnprocessableEntity, "incomplete"},
			{"stale discount", validation.ErrStaleOffer, http.StatusBadRequest, "Invalid request"},
			{"client missing", errs.ErrClientNotFound, http.StatusNotFound, "Client not found"},
			{"unknown gift card", errs.Mark(errs.Mark(errs.New("x"), errs.ErrGiftCardNotFound), errs.ErrGiftCardInvalid), http.StatusNotFound, "Gift card not found"},
			{"request in progress", errs.ErrIdempotencyInProgress, http.StatusConflict, "in progress"},
			{"key reused", errs.ErrIdempotencyConflict, http.StatusConflict, "different request"},
			{"concurrent update", errs.ErrConcurrentUpdate, http.StatusConflict, "concurrently"},
			{"internal server error", errors.New("database error"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockValidation.EXPECT().ValidateReservation(gomock.Any(), b.ID, gomock.Any(), s.actorID, key).
					Return(nil, tc.commandsError).Times(1)

				rec := s.performValidation(url, reqBody, key.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestPayments
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreatePaymentLink() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String() + "/payment-link"

	s.Run("success: returns 201 Created with the link", func() {
		s.mockPayments.EXPECT().CreatePaymentLink(gomock.Any(), b.ID).
			Return(&shared.PaymentLink{ID: "cs_1", URL: "https://pay.example.test/cs_1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.PaymentLinkResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("https://pay.example.test/cs_1", response.URL)
	})

	s.Run("error: 502 Bad Gateway when the provider fails", func() {
		s.mockPayments.EXPECT().CreatePaymentLink(gomock.Any(), b.ID).
			Return(nil, errs.Mark(errs.New("timeout"), errs.ErrPaymentLinkFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment link could not be created")
	})

	s.Run("error: 400 Bad Request when nothing is pending", func() {
		s.mockPayments.EXPECT().CreatePaymentLink(gomock.Any(), b.ID).
			Return(nil, commands.ErrNotPendingPayment).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelPendingPayment() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String() + "/payment"

	s.Run("success: returns 204 No Content", func() {
		s.mockPayments.EXPECT().CancelPendingPayment(gomock.Any(), b.ID, s.actorID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown reservation", func() {
		s.mockPayments.EXPECT().CancelPendingPayment(gomock.Any(), b.ID, s.actorID).
			Return(errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}
