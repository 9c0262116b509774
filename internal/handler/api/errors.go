package api

import (
	"net/http"

	"salon-backoffice/internal/handler/httperr"
	"salon-backoffice/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidIdempotencyKey = errs.Mark(errs.New("invalid idempotency key format"), errs.ErrInvalidInput)

type errorMapping struct {
	kind    error
	status  int
	message string
}

// Order matters: an unknown gift card is also marked invalid.
var errorMappings = []errorMapping{
	{errs.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{errs.ErrClientNotFound, http.StatusNotFound, "Client not found"},
	{errs.ErrGiftCardNotFound, http.StatusNotFound, "Gift card not found"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header required"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Request already in progress"},
	{errs.ErrIdempotencyConflict, http.StatusConflict, "Idempotency key reused with a different request"},
	{errs.ErrConcurrentUpdate, http.StatusConflict, "Reservation was modified concurrently, retry"},
	{errs.ErrBlockedByPendingPayment, http.StatusConflict, "An online payment is awaiting confirmation"},
	{errs.ErrInvalidAttendanceCombination, http.StatusUnprocessableEntity, "Attendance and payment answers are incomplete"},
	{errs.ErrGiftCardInvalid, http.StatusUnprocessableEntity, "Gift card cannot be used"},
	{errs.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{errs.ErrPaymentLinkFailed, http.StatusBadGateway, "Payment link could not be created"},
}

func abortWithDomainError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.kind) {
			httperr.AbortWithError(c, m.status, err, m.message, gin.H{"reason": err.Error()})
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errInvalidIdempotencyKey
	}

	return key, nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
