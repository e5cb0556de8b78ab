package model

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrUniquenessViolation is matched by every duplicate-key error.
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrEmailTaken          error = &uniquenessError{msg: "email already subscribed"}
	ErrTokenTaken          error = &uniquenessError{msg: "subscription token already issued"}

	ErrUnknownSubscriber = errors.New("unknown subscriber")
	ErrUnknownToken      = errors.New("unknown subscription token")
	ErrStoreUnavailable  = errors.New("subscription store unavailable")
	ErrEmailDelivery     = errors.New("email delivery failed")
)

type uniquenessError struct {
	msg string
}

func (e *uniquenessError) Error() string {
	return e.msg
}

func (e *uniquenessError) Unwrap() error {
	return ErrUniquenessViolation
}
