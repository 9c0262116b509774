//go:build unit || e2e

package fakeuow

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/usecase/shared"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Logger discards everything.
func Logger() *slog.Logger {
	return discardLogger
}

// SettingsCache is a map-backed cache. Err, when set, fails every call.
type SettingsCache struct {
	mu          sync.Mutex
	value       *loyalty.Settings
	Err         error
	Invalidated int
}

func (c *SettingsCache) Get(context.Context) (loyalty.Settings, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return loyalty.Settings{}, false, c.Err
	}
	if c.value == nil {
		return loyalty.Settings{}, false, nil
	}
	return *c.value, true, nil
}

func (c *SettingsCache) Set(_ context.Context, s loyalty.Settings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.value = &s
	return nil
}

func (c *SettingsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated++
	c.value = nil
	return c.Err
}

type LinkProvider struct {
	Requests []shared.LinkRequest
	Err      error
}

func (p *LinkProvider) CreateLink(_ context.Context, req shared.LinkRequest) (*shared.PaymentLink, error) {
	p.Requests = append(p.Requests, req)
	if p.Err != nil {
		return nil, p.Err
	}
	return &shared.PaymentLink{
		ID:  "cs_" + req.ReservationID.String()[:8],
		URL: "https://pay.example.test/" + req.ReservationID.String(),
	}, nil
}

type Metrics struct {
	Completed []string
	Kinds     []string
	Blocked   int
	LinksOK   int
	LinksKO   int
}

func (m *Metrics) ValidationCompleted(status, paymentStatus string, discountKinds []string) {
	m.Completed = append(m.Completed, status+"/"+paymentStatus)
	m.Kinds = append(m.Kinds, discountKinds...)
}

func (m *Metrics) ValidationBlocked() {
	m.Blocked++
}

func (m *Metrics) PaymentLink(ok bool) {
	if ok {
		m.LinksOK++
		return
	}
	m.LinksKO++
}
