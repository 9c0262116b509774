package shared

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/loyalty"
)

type SettingsCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context) (loyalty.Settings, bool, error)
	Set(ctx context.Context, s loyalty.Settings) error
	Invalidate(ctx context.Context) error
}

// SettingsProvider reads loyalty settings through the cache. Cache failures
// are logged and the database stays authoritative.
type SettingsProvider struct {
	cache  SettingsCache
	logger *slog.Logger
}

func NewSettingsProvider(cache SettingsCache, logger *slog.Logger) *SettingsProvider {
	return &SettingsProvider{cache: cache, logger: logger}
}

func (p *SettingsProvider) Load(ctx context.Context, repo SettingsRepository) (loyalty.Settings, error) {
	if s, ok, err := p.cache.Get(ctx); err != nil {
		p.logger.Warn("settings cache read failed", "error", err.Error())
	} else if ok {
		return s, nil
	}

	s, err := repo.Get(ctx)
	if err != nil {
		return loyalty.Settings{}, err
	}
	if err := p.cache.Set(ctx, s); err != nil {
		p.logger.Warn("settings cache write failed", "error", err.Error())
	}
	return s, nil
}

func (p *SettingsProvider) Invalidate(ctx context.Context) {
	if err := p.cache.Invalidate(ctx); err != nil {
		p.logger.Warn("settings cache invalidation failed", "error", err.Error())
	}
}
