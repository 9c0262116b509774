package response

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID            `json:"id"`
	ClientID      uuid.UUID            `json:"clientId"`
	Date          time.Time            `json:"date"`
	Services      reservation.Services `json:"services"`
	TotalPrice    money.Money          `json:"totalPrice"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
	PaymentAmount money.Money          `json:"paymentAmount"`
	PaymentDate   *time.Time           `json:"paymentDate,omitempty"`
	PaymentNotes  string               `json:"paymentNotes,omitempty"`
	InvoiceNumber string               `json:"invoiceNumber,omitempty"`
	PaymentLink   string               `json:"paymentLink,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		ClientID:      v.ClientID,
		Date:          v.Date,
		Services:      v.Services,
		TotalPrice:    v.TotalPrice,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		PaymentMethod: v.PaymentMethod,
		PaymentAmount: v.PaymentAmount,
		PaymentDate:   v.PaymentDate,
		PaymentNotes:  v.PaymentNotes,
		InvoiceNumber: v.InvoiceNumber,
		PaymentLink:   v.PaymentLink,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

type ValidationResponse struct {
	ReservationID      uuid.UUID       `json:"reservationId"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"paymentStatus"`
	PaymentMethod      string          `json:"paymentMethod,omitempty"`
	PaymentAmount      money.Money     `json:"paymentAmount"`
	PaymentNotes       string          `json:"paymentNotes,omitempty"`
	BasePrice          money.Money     `json:"basePrice"`
	DiscountTotal      money.Money     `json:"discountTotal"`
	FinalAmount        money.Money     `json:"finalAmount"`
	DiscountsApplied   []loyalty.Offer `json:"discountsApplied"`
	GiftCardCode       string          `json:"giftCardCode,omitempty"`
	GiftCardUsedAmount *money.Money    `json:"giftCardUsedAmount,omitempty"`
	InvoiceNumber      string          `json:"invoiceNumber,omitempty"`
	PaymentLinkURL     string          `json:"paymentLinkUrl,omitempty"`
	Replayed           bool            `json:"replayed"`
	Warning            string          `json:"warning,omitempty"`
}

func FromValidationOutcome(o *commands.ValidationOutcome) *ValidationResponse {
	resp := &ValidationResponse{
		ReservationID: o.ReservationID,
		InvoiceNumber: o.InvoiceNumber,
		Replayed:      o.IsReplayed,
	}
	if r := o.Result; r != nil {
		resp.Status = r.Status.String()
		resp.PaymentStatus = r.PaymentStatus.String()
		resp.PaymentMethod = r.PaymentMethod.String()
		resp.PaymentAmount = r.PaymentAmount
		resp.PaymentNotes = r.PaymentNotes
		resp.BasePrice = r.BasePrice
		resp.DiscountTotal = r.DiscountTotal
		resp.FinalAmount = r.FinalAmount
		resp.DiscountsApplied = r.DiscountLedgerEntries
		resp.GiftCardCode = r.GiftCardCode
		resp.GiftCardUsedAmount = r.GiftCardUsedAmount
	}
	if resp.DiscountsApplied == nil {
		resp.DiscountsApplied = []loyalty.Offer{}
	}
	if o.PaymentLink != nil {
		resp.PaymentLinkURL = o.PaymentLink.URL
	}
	return resp
}

type PaymentLinkResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
