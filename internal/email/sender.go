// Package email renders and delivers transactional mail.
package email

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("email provider not configured")

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          []string
	Bcc         []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers one message through a provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
