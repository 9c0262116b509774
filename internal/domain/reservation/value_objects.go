package reservation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"salon-backoffice/internal/pkg/errs"
)

var ErrInvalidServices = errs.Mark(errs.New("services must be a string, a list of strings or null"), errs.ErrInvalidInput)

type servicesKind int

const (
	servicesUnspecified servicesKind = iota
	servicesSingle
	servicesList
)

// Services is the booked treatment(s): one name, a list, or nothing.
type Services struct {
	kind  servicesKind
	names []string
}

func UnspecifiedServices() Services {
	return Services{}
}

func SingleService(name string) Services {
	name = strings.TrimSpace(name)
	if name == "" {
		return Services{}
	}
	return Services{kind: servicesSingle, names: []string{name}}
}

func ServiceList(names []string) Services {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return Services{}
	}
	return Services{kind: servicesList, names: cleaned}
}

// ParseServices normalizes the raw JSON stored with a reservation.
func ParseServices(raw []byte) (Services, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Services{}, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		// Legacy rows store a JSON array serialized inside a string.
		if strings.HasPrefix(strings.TrimSpace(single), "[") {
			return ParseServices([]byte(single))
		}
		return SingleService(single), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return ServiceList(list), nil
	}

	return Services{}, ErrInvalidServices
}

func (s Services) IsSpecified() bool {
	return s.kind != servicesUnspecified
}

func (s Services) IsList() bool {
	return s.kind == servicesList
}

func (s Services) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s Services) String() string {
	return strings.Join(s.names, ", ")
}

func (s Services) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case servicesSingle:
		return json.Marshal(s.names[0])
	case servicesList:
		return json.Marshal(s.names)
	default:
		return []byte("null"), nil
	}
}

func (s *Services) UnmarshalJSON(data []byte) error {
	parsed, err := ParseServices(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NewInvoiceNumber formats the monthly sequence as FAC-YYYYMM-NNNN.
func NewInvoiceNumber(issuedAt time.Time, seq int) string {
	return fmt.Sprintf("FAC-%s-%04d", issuedAt.Format("200601"), seq)
}
