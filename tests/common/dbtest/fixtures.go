//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type ClientFixture struct {
	FirstName               string
	LastName                string
	BirthDate               *time.Time
	IndividualServicesCount int
	PackagesCount           int
	IsReferred              bool
}

func CreateTestClient(t *testing.T, db DBLike, f ClientFixture) uuid.UUID {
	t.Helper()

	if f.FirstName == "" {
		f.FirstName = "Camille"
	}
	if f.LastName == "" {
		f.LastName = "Martin"
	}

	clientID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO clients (id, first_name, last_name, birth_date, individual_services_count, packages_count, is_referred)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		clientID, f.FirstName, f.LastName, f.BirthDate, f.IndividualServicesCount, f.PackagesCount, f.IsReferred)
	require.NoError(t, err)
	return clientID
}

type ReservationFixture struct {
	ClientID      uuid.UUID
	Date          time.Time
	Services      string // raw jsonb
	TotalPrice    string
	Status        string
	PaymentStatus string
	PaymentMethod string
	PaymentAmount string
}

func CreateTestReservation(t *testing.T, db DBLike, f ReservationFixture) uuid.UUID {
	t.Helper()

	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	if f.Services == "" {
		f.Services = `"Soin Hydro'Naissance"`
	}
	if f.TotalPrice == "" {
		f.TotalPrice = "80"
	}
	if f.Status == "" {
		f.Status = "confirmed"
	}
	if f.PaymentStatus == "" {
		f.PaymentStatus = "unpaid"
	}
	if f.PaymentAmount == "" {
		f.PaymentAmount = "0"
	}

	reservationID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, client_id, date, services, total_price, status, payment_status, payment_method, payment_amount)
		VALUES ($1, $2, $3, $4::jsonb, $5::numeric, $6, $7, $8, $9::numeric)`,
		reservationID, f.ClientID, f.Date, f.Services, f.TotalPrice, f.Status, f.PaymentStatus, f.PaymentMethod, f.PaymentAmount)
	require.NoError(t, err)
	return reservationID
}

func CreateTestGiftCard(t *testing.T, db DBLike, code, balance string, expiresAt *time.Time) uuid.UUID {
	t.Helper()

	cardID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO gift_cards (id, code, initial_amount, balance, status, expires_at)
		VALUES ($1, $2, $3::numeric, $3::numeric, 'active', $4)`,
		cardID, code, balance, expiresAt)
	require.NoError(t, err)
	return cardID
}

func CreateTestReferral(t *testing.T, db DBLike, sponsorID, referredID uuid.UUID) uuid.UUID {
	t.Helper()

	referralID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO referrals (id, sponsor_id, referred_id) VALUES ($1, $2, $3)`,
		referralID, sponsorID, referredID)
	require.NoError(t, err)
	return referralID
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE "+where, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO loyalty_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
