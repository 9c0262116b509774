package api

import (
	"net/http"

	reqdto "salon-backoffice/internal/handler/dto/request"
	resdto "salon-backoffice/internal/handler/dto/response"
	"salon-backoffice/internal/handler/httperr"
	"salon-backoffice/internal/handler/middleware"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	validation commands.ValidationCommands
	payments   commands.PaymentCommands
	q          queries.ReservationQueries
	preview    queries.PreviewQueries
}

func NewReservationHandler(
	validation commands.ValidationCommands,
	payments commands.PaymentCommands,
	q queries.ReservationQueries,
	preview queries.PreviewQueries,
) *ReservationHandler {
	return &ReservationHandler{
		validation: validation,
		payments:   payments,
		q:          q,
		preview:    preview,
	}
}

// @Summary Get reservation
// @Description Get a reservation with its payment state
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.q.GetReservation(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Preview validation
// @Description Price a discount selection without writing anything
// @Tags validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.PreviewValidationRequest false "Discount selection"
// @Success 200 {object} queries.PreviewView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id}/validation/preview [post]
func (h *ReservationHandler) PreviewValidation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.PreviewValidationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	view, err := h.preview.Preview(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Validate reservation
// @Description Record attendance and payment, consume the selected discounts and issue the invoice
// @Tags validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.ValidateReservationRequest true "Validation request"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/reservations/{id}/validation [post]
func (h *ReservationHandler) ValidateReservation(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	var req reqdto.ValidateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	outcome, err := h.validation.ValidateReservation(c.Request.Context(), id, req.ToInput(), actorID, idempotencyKey)
	if err != nil {
		if outcome == nil {
			abortWithDomainError(c, err)
			return
		}
		// the validation is stored; only the hosted checkout failed
		_ = c.Error(err)
		resp := resdto.FromValidationOutcome(outcome)
		resp.Warning = "Payment link could not be created, retry from the reservation"
		c.JSON(http.StatusOK, resp)
		return
	}

	if outcome.IsReplayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusOK, resdto.FromValidationOutcome(outcome))
}

// @Summary Create payment link
// @Description Open a new hosted checkout for a reservation awaiting online payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 201 {object} resdto.PaymentLinkResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/reservations/{id}/payment-link [post]
func (h *ReservationHandler) CreatePaymentLink(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	link, err := h.payments.CreatePaymentLink(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.PaymentLinkResponse{ID: link.ID, URL: link.URL})
}

// @Summary Cancel pending payment
// @Description Operator override that resets a reservation stuck on a pending online payment
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id}/payment [delete]
func (h *ReservationHandler) CancelPendingPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.payments.CancelPendingPayment(c.Request.Context(), id, actorID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
