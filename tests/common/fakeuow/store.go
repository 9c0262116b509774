//go:build unit || e2e

// Package fakeuow is an in-memory shared.UnitOfWork for use case tests.
// Within rolls every change back when fn fails.
package fakeuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type GiftCardRow struct {
	ID        uuid.UUID
	Code      string
	Initial   money.Money
	Balance   money.Money
	Status    giftcard.Status
	ExpiresAt *time.Time
}

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
}

type idemKey struct {
	key, actor uuid.UUID
}

type state struct {
	Reservations     map[uuid.UUID]reservation.Snapshot
	Profiles         map[uuid.UUID]loyalty.Profile
	Ledger           map[uuid.UUID][]loyalty.LedgerEntry
	PendingReferrals map[uuid.UUID]int
	RewardedReferral map[uuid.UUID]int
	GiftCards        map[string]GiftCardRow
	GiftCardTxns     []shared.GiftCardTransaction
	History          []shared.HistoryRecord
	Invoices         map[string]int
	Settings         *loyalty.Settings
	Idempotency      map[idemKey]shared.IdempotencyRecord
	Jobs             []Job
	Links            map[uuid.UUID]shared.PaymentLink
}

func newState() state {
	return state{
		Reservations:     map[uuid.UUID]reservation.Snapshot{},
		Profiles:         map[uuid.UUID]loyalty.Profile{},
		Ledger:           map[uuid.UUID][]loyalty.LedgerEntry{},
		PendingReferrals: map[uuid.UUID]int{},
		RewardedReferral: map[uuid.UUID]int{},
		GiftCards:        map[string]GiftCardRow{},
		Invoices:         map[string]int{},
		Idempotency:      map[idemKey]shared.IdempotencyRecord{},
		Links:            map[uuid.UUID]shared.PaymentLink{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.Reservations {
		c.Reservations[k] = v
	}
	for k, v := range s.Profiles {
		c.Profiles[k] = v
	}
	for k, v := range s.Ledger {
		c.Ledger[k] = append([]loyalty.LedgerEntry(nil), v...)
	}
	for k, v := range s.PendingReferrals {
		c.PendingReferrals[k] = v
	}
	for k, v := range s.RewardedReferral {
		c.RewardedReferral[k] = v
	}
	for k, v := range s.GiftCards {
		c.GiftCards[k] = v
	}
	for k, v := range s.Invoices {
		c.Invoices[k] = v
	}
	for k, v := range s.Idempotency {
		c.Idempotency[k] = v
	}
	for k, v := range s.Links {
		c.Links[k] = v
	}
	c.GiftCardTxns = append([]shared.GiftCardTransaction(nil), s.GiftCardTxns...)
	c.History = append([]shared.HistoryRecord(nil), s.History...)
	c.Jobs = append([]Job(nil), s.Jobs...)
	if s.Settings != nil {
		st := *s.Settings
		c.Settings = &st
	}
	return c
}

// Store holds committed state. Seed it directly before exercising a use case.
type Store struct {
	mu sync.Mutex
	state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Store) AddReservation(snap reservation.Snapshot) {
	s.Reservations[snap.ID] = snap
}

func (s *Store) AddProfile(p loyalty.Profile) {
	s.Profiles[p.ClientID] = p
}

func (s *Store) AddLedgerEntry(clientID uuid.UUID, e loyalty.LedgerEntry) {
	s.Ledger[clientID] = append(s.Ledger[clientID], e)
}

func (s *Store) AddGiftCard(row GiftCardRow) {
	s.GiftCards[row.Code] = row
}

func (s *Store) Reservation(id uuid.UUID) reservation.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reservations[id]
}

func (s *Store) Profile(id uuid.UUID) loyalty.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Profiles[id]
}

func (s *Store) LedgerOf(clientID uuid.UUID) []loyalty.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]loyalty.LedgerEntry(nil), s.Ledger[clientID]...)
}

func (s *Store) GiftCard(code string) GiftCardRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.GiftCards[code]
}

func (s *Store) IdempotencyRecord(key, actor uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Idempotency[idemKey{key, actor}]
	return rec, ok
}

// UoW runs fn against a working copy of the store and commits it on success.
type UoW struct {
	store *Store
	// FailCommit makes the next Within fail after fn ran.
	FailCommit error
	Calls      int
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.Calls++

	work := u.store.state.clone()
	tx := &fakeTx{st: &work, now: u.store.now}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if u.FailCommit != nil {
		err := u.FailCommit
		u.FailCommit = nil
		return err
	}
	u.store.state = work
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.Calls++

	work := u.store.state.clone()
	return fn(ctx, &fakeTx{st: &work, now: u.store.now})
}

type fakeTx struct {
	st  *state
	now func() time.Time
}

var discardLogger = newDiscardLogger()

func notFound(msg string) error {
	return infra.WrapRepoErr(discardLogger, infra.KindNotFound, msg, nil)
}

func conflict(msg string) error {
	return infra.WrapRepoErr(discardLogger, infra.KindConflict, msg, nil)
}

func (t *fakeTx) Reservations() shared.ReservationRepository   { return reservationRepo{t} }
func (t *fakeTx) Clients() shared.ClientRepository             { return clientRepo{t} }
func (t *fakeTx) Ledger() shared.LedgerRepository              { return ledgerRepo{t} }
func (t *fakeTx) Referrals() shared.ReferralRepository         { return referralRepo{t} }
func (t *fakeTx) GiftCards() shared.GiftCardRepository         { return giftCardRepo{t} }
func (t *fakeTx) History() shared.HistoryRepository            { return historyRepo{t} }
func (t *fakeTx) Invoices() shared.InvoiceRepository           { return invoiceRepo{t} }
func (t *fakeTx) Settings() shared.SettingsRepository          { return settingsRepo{t} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return notificationRepo{t} }

type reservationRepo struct{ *fakeTx }

func (r reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	snap, ok := r.st.Reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return reservation.ReconstructReservation(snap), nil
}

func (r reservationRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r reservationRepo) ApplyValidation(_ context.Context, id uuid.UUID, p shared.ValidationPatch) error {
	snap, ok := r.st.Reservations[id]
	if !ok {
		return notFound("reservation not found")
	}
	snap.Status = p.Status
	snap.PaymentStatus = p.PaymentStatus
	snap.PaymentMethod = p.PaymentMethod
	snap.PaymentAmount = p.PaymentAmount
	snap.PaymentDate = p.PaymentDate
	snap.PaymentNotes = p.PaymentNotes
	if p.InvoiceNumber != "" {
		snap.InvoiceNumber = p.InvoiceNumber
	}
	r.st.Reservations[id] = snap
	return nil
}

func (r reservationRepo) SetPaymentLink(_ context.Context, id uuid.UUID, link shared.PaymentLink) error {
	snap, ok := r.st.Reservations[id]
	if !ok {
		return notFound("reservation not found")
	}
	snap.PaymentLink = link.URL
	r.st.Reservations[id] = snap
	r.st.Links[id] = link
	return nil
}

func (r reservationRepo) ResetPayment(_ context.Context, id uuid.UUID) error {
	snap, ok := r.st.Reservations[id]
	if !ok {
		return notFound("reservation not found")
	}
	snap.PaymentStatus = reservation.PaymentUnpaid
	snap.PaymentMethod = reservation.MethodNone
	snap.PaymentAmount = money.Zero()
	snap.PaymentDate = nil
	snap.PaymentLink = ""
	r.st.Reservations[id] = snap
	delete(r.st.Links, id)
	return nil
}

type clientRepo struct{ *fakeTx }

func (r clientRepo) LoyaltyProfile(_ context.Context, clientID uuid.UUID) (*loyalty.Profile, error) {
	p, ok := r.st.Profiles[clientID]
	if !ok {
		return nil, notFound("client not found")
	}
	p.Referral.PendingReferrals = r.st.PendingReferrals[clientID]
	p.Referral.IsSponsor = p.Referral.IsSponsor || p.Referral.PendingReferrals > 0 || r.st.RewardedReferral[clientID] > 0
	return &p, nil
}

func (r clientRepo) ResetCounters(_ context.Context, clientID uuid.UUID, services, packages bool) error {
	p, ok := r.st.Profiles[clientID]
	if !ok {
		return notFound("client not found")
	}
	if services {
		p.IndividualServicesCount = 0
	}
	if packages {
		p.PackagesCount = 0
	}
	r.st.Profiles[clientID] = p
	return nil
}

func (r clientRepo) MarkReferralDiscountUsed(_ context.Context, clientID uuid.UUID) error {
	p, ok := r.st.Profiles[clientID]
	if !ok {
		return notFound("client not found")
	}
	p.Referral.HasUsedReferralDiscount = true
	r.st.Profiles[clientID] = p
	return nil
}

type ledgerRepo struct{ *fakeTx }

func (r ledgerRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]loyalty.LedgerEntry, error) {
	out := append([]loyalty.LedgerEntry(nil), r.st.Ledger[clientID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r ledgerRepo) Create(_ context.Context, rec shared.LedgerRecord) (uuid.UUID, error) {
	id := uuid.New()
	r.st.Ledger[rec.ClientID] = append(r.st.Ledger[rec.ClientID], loyalty.LedgerEntry{
		ID:        id,
		Type:      rec.Type,
		Amount:    rec.Amount,
		Reason:    rec.Reason,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
	})
	return id, nil
}

func (r ledgerRepo) MarkUsed(_ context.Context, ids []uuid.UUID, _ uuid.UUID, _ time.Time) error {
	for _, id := range ids {
		found := false
		for clientID, entries := range r.st.Ledger {
			for i, e := range entries {
				if e.ID != id {
					continue
				}
				if e.Status != loyalty.LedgerStatusAvailable {
					return conflict("discount already used")
				}
				entries[i].Status = loyalty.LedgerStatusUsed
				r.st.Ledger[clientID] = entries
				found = true
			}
		}
		if !found {
			return conflict("discount already used")
		}
	}
	return nil
}

type referralRepo struct{ *fakeTx }

func (r referralRepo) RewardOldestPending(_ context.Context, sponsorID uuid.UUID, _ time.Time) error {
	if r.st.PendingReferrals[sponsorID] == 0 {
		return notFound("no pending referral")
	}
	r.st.PendingReferrals[sponsorID]--
	r.st.RewardedReferral[sponsorID]++
	return nil
}

type giftCardRepo struct{ *fakeTx }

func (r giftCardRepo) FindByCode(_ context.Context, code giftcard.Code) (*giftcard.GiftCard, error) {
	row, ok := r.st.GiftCards[code.String()]
	if !ok {
		return nil, notFound("gift card not found")
	}
	return giftcard.ReconstructGiftCard(row.ID, giftcard.Code(row.Code), row.Initial, row.Balance, row.Status, row.ExpiresAt, time.Time{}), nil
}

func (r giftCardRepo) Debit(_ context.Context, id uuid.UUID, amount money.Money) (money.Money, error) {
	for code, row := range r.st.GiftCards {
		if row.ID != id {
			continue
		}
		if row.Status != giftcard.StatusActive || row.Balance.Cmp(amount) < 0 {
			return money.Zero(), conflict("gift card balance changed")
		}
		row.Balance = row.Balance.Sub(amount)
		if row.Balance.IsZero() {
			row.Status = giftcard.StatusUsed
		}
		r.st.GiftCards[code] = row
		return row.Balance, nil
	}
	return money.Zero(), notFound("gift card not found")
}

func (r giftCardRepo) RecordTransaction(_ context.Context, rec shared.GiftCardTransaction) error {
	r.st.GiftCardTxns = append(r.st.GiftCardTxns, rec)
	return nil
}

type historyRepo struct{ *fakeTx }

func (r historyRepo) Create(_ context.Context, rec shared.HistoryRecord) error {
	r.st.History = append(r.st.History, rec)
	return nil
}

type invoiceRepo struct{ *fakeTx }

func (r invoiceRepo) Next(_ context.Context, at time.Time) (int, error) {
	period := at.Format("200601")
	r.st.Invoices[period]++
	return r.st.Invoices[period], nil
}

type settingsRepo struct{ *fakeTx }

func (r settingsRepo) Get(context.Context) (loyalty.Settings, error) {
	if r.st.Settings == nil {
		return loyalty.DefaultSettings(), nil
	}
	return *r.st.Settings, nil
}

func (r settingsRepo) Save(_ context.Context, s loyalty.Settings) error {
	r.st.Settings = &s
	return nil
}

type idempotencyRepo struct{ *fakeTx }

func (r idempotencyRepo) TryInsert(_ context.Context, key, actorID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, actorID}
	if existing, ok := r.st.Idempotency[k]; ok && !existing.ExpiresAt.Before(r.now()) {
		return false, nil
	}
	r.st.Idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		ActorID:     actorID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, key, actorID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.Idempotency[idemKey{key, actorID}]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r idempotencyRepo) Complete(_ context.Context, key, actorID uuid.UUID, _ string, payload []byte, reservationID uuid.UUID) error {
	k := idemKey{key, actorID}
	rec, ok := r.st.Idempotency[k]
	if !ok || rec.Status != shared.IdempotencyStatusProcessing {
		return conflict("idempotency key is no longer processing")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultPayload = payload
	rec.ReservationID = &reservationID
	r.st.Idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, key, actorID uuid.UUID) error {
	k := idemKey{key, actorID}
	if rec, ok := r.st.Idempotency[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(r.st.Idempotency, k)
	}
	return nil
}

type notificationRepo struct{ *fakeTx }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, _ time.Time) error {
	r.st.Jobs = append(r.st.Jobs, Job{Kind: kind, Topic: topic, Payload: payload})
	return nil
}
