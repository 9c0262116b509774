//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"salon-backoffice/internal/domain/staff"
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role staff.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.TokenDuration)
	token, err := service.GenerateToken(userID, role.String())
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role staff.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, -time.Minute)
	token, err := service.GenerateToken(userID, role.String())
	require.NoError(t, err)
	return token
}
