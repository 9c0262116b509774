package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "salon:loyalty:settings"

type SettingsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

func NewSettingsCache(client redis.Cmdable, cfg config.RedisConfig) *SettingsCache {
	return &SettingsCache{client: client, ttl: cfg.SettingsTTL}
}

func (c *SettingsCache) Get(ctx context.Context) (loyalty.Settings, bool, error) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return loyalty.Settings{}, false, nil
		}
		return loyalty.Settings{}, false, err
	}

	var s loyalty.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return loyalty.Settings{}, false, err
	}
	return s, true, nil
}

func (c *SettingsCache) Set(ctx context.Context, s loyalty.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsKey, data, c.ttl).Err()
}

func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsKey).Err()
}
