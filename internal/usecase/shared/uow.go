package shared

import (
	"context"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and *pgx.Conn.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Reservations() ReservationRepository
	Clients() ClientRepository
	Ledger() LedgerRepository
	Referrals() ReferralRepository
	GiftCards() GiftCardRepository
	History() HistoryRepository
	Invoices() InvoiceRepository
	Settings() SettingsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
}

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ApplyValidation(ctx context.Context, id uuid.UUID, patch ValidationPatch) error
	SetPaymentLink(ctx context.Context, id uuid.UUID, link PaymentLink) error
	ResetPayment(ctx context.Context, id uuid.UUID) error
}

type ClientRepository interface {
	LoyaltyProfile(ctx context.Context, clientID uuid.UUID) (*loyalty.Profile, error)
	ResetCounters(ctx context.Context, clientID uuid.UUID, services, packages bool) error
	MarkReferralDiscountUsed(ctx context.Context, clientID uuid.UUID) error
}

type LedgerRepository interface {
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]loyalty.LedgerEntry, error)
	Create(ctx context.Context, rec LedgerRecord) (uuid.UUID, error)
	MarkUsed(ctx context.Context, ids []uuid.UUID, reservationID uuid.UUID, usedAt time.Time) error
}

type ReferralRepository interface {
	// RewardOldestPending returns a NOT_FOUND repository error when the sponsor has no pending referral.
	RewardOldestPending(ctx context.Context, sponsorID uuid.UUID, at time.Time) error
}

type GiftCardRepository interface {
	FindByCode(ctx context.Context, code giftcard.Code) (*giftcard.GiftCard, error)
	// Debit fails with a CONFLICT repository error when the balance no longer covers amount.
	Debit(ctx context.Context, id uuid.UUID, amount money.Money) (money.Money, error)
	RecordTransaction(ctx context.Context, rec GiftCardTransaction) error
}

type HistoryRepository interface {
	Create(ctx context.Context, rec HistoryRecord) error
}

type InvoiceRepository interface {
	// Next returns the next sequence value of the month containing at.
	Next(ctx context.Context, at time.Time) (int, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (loyalty.Settings, error)
	Save(ctx context.Context, s loyalty.Settings) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether the key was claimed. An expired record is taken over; a live one is left untouched.
	TryInsert(ctx context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, actorID uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key, actorID uuid.UUID, responseHash string, payload []byte, reservationID uuid.UUID) error
	// Release drops a record still processing so the client can retry after a failure.
	Release(ctx context.Context, key, actorID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
