package model

import "context"

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers rendered messages.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
