package errs

import "errors"

// Error kinds surfaced to operators. Concrete errors are marked with one of these
// so callers classify with errs.Is regardless of wrapping depth.
var (
	ErrInvalidInput                 = errors.New("invalid input")
	ErrInvalidAttendanceCombination = errors.New("invalid attendance combination")
	ErrBlockedByPendingPayment      = errors.New("blocked by pending payment")
	ErrGiftCardInvalid              = errors.New("gift card invalid")

	// Lookup errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrGiftCardNotFound    = errors.New("gift card not found")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with a different request")

	// Operation errors
	ErrConcurrentUpdate        = errors.New("concurrent update")
	ErrPaymentLinkFailed       = errors.New("payment link creation failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
