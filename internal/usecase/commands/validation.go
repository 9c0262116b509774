package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var errInvalidIdempotencyStatus = errs.New("invalid idempotency key status")

type ValidationCommands interface {
	ValidateReservation(ctx context.Context, reservationID uuid.UUID, in ValidateInput, actorID, idempotencyKey uuid.UUID) (*ValidationOutcome, error)
}

type validationCommandsImpl struct {
	uow            shared.UnitOfWork
	loader         *shared.ContextLoader
	validator      *validation.Validator
	links          *paymentLinks
	metrics        shared.MetricsRecorder
	clock          clock.Clock
	idempotencyTTL time.Duration
	logger         *slog.Logger
}

func NewValidationCommands(
	uow shared.UnitOfWork,
	loader *shared.ContextLoader,
	validator *validation.Validator,
	linkProvider shared.PaymentLinkProvider,
	metrics shared.MetricsRecorder,
	clock clock.Clock,
	cfg config.IdempotencyConfig,
	logger *slog.Logger,
) ValidationCommands {
	return &validationCommandsImpl{
		uow:            uow,
		loader:         loader,
		validator:      validator,
		links:          newPaymentLinks(uow, linkProvider, metrics, logger),
		metrics:        metrics,
		clock:          clock,
		idempotencyTTL: cfg.TTL,
		logger:         logger,
	}
}

func (c *validationCommandsImpl) ValidateReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	in ValidateInput,
	actorID, idempotencyKey uuid.UUID,
) (*ValidationOutcome, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	method, err := reservation.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(reservationID, in)
	replayed, err := c.claimIdempotencyKey(ctx, idempotencyKey, actorID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	outcome, res, err := c.validateAndPersist(ctx, reservationID, in, method, actorID, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, idempotencyKey, actorID)
		if errs.Is(err, errs.ErrBlockedByPendingPayment) {
			c.metrics.ValidationBlocked()
		}
		return nil, err
	}

	result := outcome.Result
	c.metrics.ValidationCompleted(result.Status.String(), result.PaymentStatus.String(), discountKinds(result))
	c.logger.Info("reservation validated",
		"reservation_id", reservationID,
		"status", result.Status.String(),
		"payment_status", result.PaymentStatus.String(),
		"final_amount", result.FinalAmount.String(),
		"invoice_number", outcome.InvoiceNumber,
	)

	if result.RequiresPaymentLink() {
		link, err := c.links.open(ctx, res, result.PaymentAmount, outcome.InvoiceNumber)
		if err != nil {
			// The validation is committed; the link can be regenerated.
			return outcome, err
		}
		outcome.PaymentLink = link
	}
	return outcome, nil
}

func (c *validationCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	key, actorID uuid.UUID,
	requestHash string,
) (*ValidationOutcome, error) {
	var existing *shared.IdempotencyRecord
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Idempotency().TryInsert(ctx, key, actorID, validationEndpoint, requestHash, c.clock.Now().Add(c.idempotencyTTL))
		if err != nil || claimed {
			return err
		}
		existing, err = tx.Idempotency().Get(ctx, key, actorID)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyConflict
	}
	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		return c.replay(ctx, existing)
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errInvalidIdempotencyStatus
	}
}

// replay returns the stored outcome with the reservation's current payment link.
func (c *validationCommandsImpl) replay(ctx context.Context, rec *shared.IdempotencyRecord) (*ValidationOutcome, error) {
	var outcome ValidationOutcome
	if err := json.Unmarshal(rec.ResultPayload, &outcome); err != nil {
		return nil, errs.Wrap(err, "failed to decode stored validation")
	}
	outcome.IsReplayed = true

	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := shared.LoadReservation(ctx, tx.Reservations(), outcome.ReservationID, false)
		if err != nil {
			return err
		}
		if res.PaymentLink() != "" {
			outcome.PaymentLink = &shared.PaymentLink{URL: res.PaymentLink()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (c *validationCommandsImpl) releaseIdempotencyKey(ctx context.Context, key, actorID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, actorID)
	})
	if err != nil {
		c.logger.Warn("failed to release idempotency key", "key", key, "error", err.Error())
	}
}

func (c *validationCommandsImpl) validateAndPersist(
	ctx context.Context,
	reservationID uuid.UUID,
	in ValidateInput,
	method reservation.PaymentMethod,
	actorID, idempotencyKey uuid.UUID,
) (*ValidationOutcome, *reservation.Reservation, error) {
	var (
		outcome *ValidationOutcome
		locked  *reservation.Reservation
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := shared.LoadReservation(ctx, tx.Reservations(), reservationID, true)
		if err != nil {
			return err
		}
		if res.IsPaymentPending() {
			return validation.ErrPendingPayment
		}

		today := c.validator.Today()
		vc, err := c.loader.Load(ctx, tx, res, today)
		if err != nil {
			return err
		}
		sel, err := shared.BuildSelection(ctx, tx, vc, in.SelectionInput, today)
		if err != nil {
			return err
		}

		result, err := c.validator.Validate(validation.Request{
			Reservation: res,
			Profile:     vc.Profile,
			Settings:    vc.Settings,
			Catalog:     vc.Catalog,
			Attended:    in.Attended,
			Paid:        in.Paid,
			Selection:   sel,
			Method:      method,
			Notes:       in.Notes,
		})
		if err != nil {
			return err
		}

		invoice, err := c.persist(ctx, tx, vc, result, today)
		if err != nil {
			return err
		}

		outcome = &ValidationOutcome{
			ReservationID: reservationID,
			Result:        result,
			InvoiceNumber: invoice,
		}
		locked = res
		payload, err := json.Marshal(outcome)
		if err != nil {
			return errs.Wrap(err, "failed to encode validation outcome")
		}
		if err := tx.Idempotency().Complete(ctx, idempotencyKey, actorID, hashBytes(payload), payload, reservationID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcome, locked, nil
}

// persist writes the reservation patch and every loyalty side effect in the caller's transaction.
func (c *validationCommandsImpl) persist(
	ctx context.Context,
	tx shared.Tx,
	vc *shared.ValidationContext,
	result *validation.Result,
	now time.Time,
) (string, error) {
	res := vc.Reservation
	invoice := res.InvoiceNumber()
	newInvoice := ""
	if result.PaymentStatus.CollectsMoney() && !res.HasInvoice() {
		seq, err := tx.Invoices().Next(ctx, now)
		if err != nil {
			return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		newInvoice = reservation.NewInvoiceNumber(now, seq)
		invoice = newInvoice
	}

	err := tx.Reservations().ApplyValidation(ctx, res.ID(), shared.ValidationPatch{
		Status:        result.Status,
		PaymentStatus: result.PaymentStatus,
		PaymentMethod: result.PaymentMethod,
		PaymentAmount: result.PaymentAmount,
		PaymentDate:   result.PaymentDate,
		PaymentNotes:  result.PaymentNotes,
		InvoiceNumber: newInvoice,
	})
	if err != nil {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := c.resetCounters(ctx, tx, vc, result); err != nil {
		return "", err
	}
	if err := c.consumeDiscounts(ctx, tx, res, result, now); err != nil {
		return "", err
	}
	if err := c.debitGiftCard(ctx, tx, res.ID(), result); err != nil {
		return "", err
	}
	if err := c.enqueueNotification(ctx, tx, res, result, invoice); err != nil {
		return "", err
	}
	return invoice, nil
}

func (c *validationCommandsImpl) resetCounters(ctx context.Context, tx shared.Tx, vc *shared.ValidationContext, result *validation.Result) error {
	if !result.ResetIndividualServicesCount && !result.ResetPackagesCount {
		return nil
	}
	res := vc.Reservation
	clientID, reservationID := res.ClientID(), res.ID()

	err := tx.Clients().ResetCounters(ctx, clientID, result.ResetIndividualServicesCount, result.ResetPackagesCount)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	for _, o := range result.DiscountLedgerEntries {
		var points int
		switch o.Kind() {
		case loyalty.KindIndividual:
			points = -vc.Profile.IndividualServicesCount
		case loyalty.KindPackage:
			points = -vc.Profile.PackagesCount
		default:
			continue
		}
		err := tx.History().Create(ctx, shared.HistoryRecord{
			ClientID:      clientID,
			ReservationID: &reservationID,
			Action:        shared.HistoryActionDiscountUsed,
			Points:        points,
			Description:   o.Label(),
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// consumeDiscounts records catalog offers as used ledger rows, burns ledger-sourced
// offers and settles referrals.
func (c *validationCommandsImpl) consumeDiscounts(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	result *validation.Result,
	now time.Time,
) error {
	clientID, reservationID := res.ClientID(), res.ID()
	var fromLedger []uuid.UUID

	for _, o := range result.DiscountLedgerEntries {
		if o.FromLedger() {
			fromLedger = append(fromLedger, *o.LedgerEntryID())
			continue
		}
		_, err := tx.Ledger().Create(ctx, shared.LedgerRecord{
			ClientID:      clientID,
			ReservationID: &reservationID,
			Type:          o.Kind(),
			Amount:        o.Amount(),
			Reason:        o.Label(),
			Status:        loyalty.LedgerStatusUsed,
			CreatedAt:     now,
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		switch o.Kind() {
		case loyalty.KindReferralSponsor:
			if err := tx.Referrals().RewardOldestPending(ctx, clientID, now); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, errs.ErrConcurrentUpdate)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		case loyalty.KindReferralReferred:
			if err := tx.Clients().MarkReferralDiscountUsed(ctx, clientID); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
	}

	if err := tx.Ledger().MarkUsed(ctx, fromLedger, reservationID, now); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, errs.ErrConcurrentUpdate)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *validationCommandsImpl) debitGiftCard(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, result *validation.Result) error {
	if !result.UsesGiftCard() {
		return nil
	}
	amount := *result.GiftCardUsedAmount
	remaining, err := tx.GiftCards().Debit(ctx, *result.GiftCardID, amount)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, errs.ErrGiftCardInvalid)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	err = tx.GiftCards().RecordTransaction(ctx, shared.GiftCardTransaction{
		GiftCardID:    *result.GiftCardID,
		ReservationID: reservationID,
		Amount:        amount,
		BalanceAfter:  remaining,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *validationCommandsImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	result *validation.Result,
	invoice string,
) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID(),
		"client_id":      res.ClientID(),
		"status":         result.Status,
		"payment_status": result.PaymentStatus,
		"payment_amount": result.PaymentAmount,
		"invoice_number": invoice,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	if err := tx.Notifications().CreateJob(ctx, notificationKindEmail, topicReservationValidated, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func discountKinds(result *validation.Result) []string {
	kinds := make([]string, 0, len(result.DiscountLedgerEntries)+1)
	for _, o := range result.DiscountLedgerEntries {
		kinds = append(kinds, o.Kind().String())
	}
	if result.UsesGiftCard() {
		kinds = append(kinds, loyalty.KindGiftCard.String())
	}
	return kinds
}

func calculateRequestHash(reservationID uuid.UUID, in ValidateInput) string {
	data, _ := json.Marshal(struct {
		ReservationID uuid.UUID     `json:"reservationId"`
		Input         ValidateInput `json:"input"`
	}{reservationID, in})
	return hashBytes(data)
}

func hashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
