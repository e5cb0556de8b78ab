package domain

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"golang.org/x/net/idna"
)

// MaxEmailLength is the longest address accepted, in bytes.
const MaxEmailLength = 254

// SubscriberEmail is an address that passed validation. The domain part is
// stored in lowercase ASCII form.
type SubscriberEmail struct {
	value string
}

func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return SubscriberEmail{}, fmt.Errorf("%w: empty", ErrInvalidEmail)
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return SubscriberEmail{}, fmt.Errorf("%w: missing local part or domain", ErrInvalidEmail)
	}

	host, err := idna.Lookup.ToASCII(email[at+1:])
	if err != nil {
		return SubscriberEmail{}, fmt.Errorf("%w: domain: %v", ErrInvalidEmail, err)
	}
	email = email[:at] + "@" + strings.ToLower(host)

	if len(email) > MaxEmailLength {
		return SubscriberEmail{}, fmt.Errorf("%w: longer than %d bytes", ErrInvalidEmail, MaxEmailLength)
	}
	if !govalidator.IsEmail(email) {
		return SubscriberEmail{}, fmt.Errorf("%w: malformed address", ErrInvalidEmail)
	}
	return SubscriberEmail{value: email}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}
