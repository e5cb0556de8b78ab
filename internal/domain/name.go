package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the upper bound on a name in runes.
const MaxNameLength = 256

const forbiddenNameChars = `/()"<>\{}`

// SubscriberName is a display name that passed validation.
type SubscriberName struct {
	value string
}

// ParseSubscriberName trims and NFC-normalizes raw and rejects empty,
// over-long and forbidden-character names.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if name == "" {
		return SubscriberName{}, fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return SubscriberName{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	for _, r := range name {
		if strings.ContainsRune(forbiddenNameChars, r) {
			return SubscriberName{}, fmt.Errorf("%w: forbidden character %q", ErrInvalidName, r)
		}
		if unicode.IsControl(r) {
			return SubscriberName{}, fmt.Errorf("%w: control character", ErrInvalidName)
		}
	}
	return SubscriberName{value: name}, nil
}

func (n SubscriberName) String() string {
	return n.value
}
