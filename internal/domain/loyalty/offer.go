package loyalty

import (
	"encoding/json"

	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

// Offer is an immutable discount candidate.
type Offer struct {
	kind          Kind
	amount        money.Money
	label         string
	automatic     bool
	ledgerEntryID *uuid.UUID
}

func NewOffer(kind Kind, amount money.Money, label string, automatic bool) Offer {
	return Offer{kind: kind, amount: amount, label: label, automatic: automatic}
}

func newLedgerOffer(e LedgerEntry) Offer {
	id := e.ID
	return Offer{
		kind:          KindManual,
		amount:        e.Amount,
		label:         ledgerLabel(e),
		ledgerEntryID: &id,
	}
}

func (o Offer) Kind() Kind                { return o.kind }
func (o Offer) Amount() money.Money       { return o.amount }
func (o Offer) Label() string             { return o.label }
func (o Offer) Automatic() bool           { return o.automatic }
func (o Offer) LedgerEntryID() *uuid.UUID { return o.ledgerEntryID }

func (o Offer) FromLedger() bool {
	return o.ledgerEntryID != nil
}

// Key identifies an offer inside a selection. Ledger offers are keyed by
// entry so that two credits with the same reason and amount stay distinct.
func (o Offer) Key() string {
	if o.ledgerEntryID != nil {
		return string(o.kind) + ":" + o.ledgerEntryID.String()
	}
	return string(o.kind) + ":" + o.label
}

type offerJSON struct {
	Key           string      `json:"key"`
	Kind          Kind        `json:"kind"`
	Amount        money.Money `json:"amount"`
	Label         string      `json:"label"`
	Automatic     bool        `json:"automatic"`
	LedgerEntryID *uuid.UUID  `json:"ledgerEntryId,omitempty"`
}

func (o Offer) MarshalJSON() ([]byte, error) {
	return json.Marshal(offerJSON{
		Key:           o.Key(),
		Kind:          o.kind,
		Amount:        o.amount,
		Label:         o.label,
		Automatic:     o.automatic,
		LedgerEntryID: o.ledgerEntryID,
	})
}

func (o *Offer) UnmarshalJSON(data []byte) error {
	var v offerJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Offer{
		kind:          v.Kind,
		amount:        v.Amount,
		label:         v.Label,
		automatic:     v.Automatic,
		ledgerEntryID: v.LedgerEntryID,
	}
	return nil
}
