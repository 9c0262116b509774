package giftcard

import (
	"regexp"
	"strings"

	"salon-backoffice/internal/pkg/errs"
)

var ErrInvalidCode = errs.Mark(errs.New("invalid gift card code format"), errs.ErrGiftCardInvalid)

var codeRegex = regexp.MustCompile(`^[A-Z0-9-]{4,32}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Status string

const (
	StatusActive    Status = "active"
	StatusUsed      Status = "used"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}
