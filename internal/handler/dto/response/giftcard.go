package response

import (
	"time"

	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/queries"
)

type GiftCardResponse struct {
	Code      string      `json:"code"`
	Balance   money.Money `json:"balance"`
	Status    string      `json:"status"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
	Valid     bool        `json:"valid"`
	Reason    string      `json:"reason,omitempty"`
}

func FromGiftCardView(v *queries.GiftCardView) *GiftCardResponse {
	return &GiftCardResponse{
		Code:      v.Code,
		Balance:   v.Balance,
		Status:    v.Status,
		ExpiresAt: v.ExpiresAt,
		Valid:     v.Valid,
		Reason:    v.Reason,
	}
}
