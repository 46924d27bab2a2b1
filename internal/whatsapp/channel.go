package whatsapp

import "context"

// Channel delivers one text message to one canonical phone number. Send
// reports only pass/fail; retries, if any, are a caller policy applied across
// scheduled runs, never inside a single call.
type Channel interface {
	Send(ctx context.Context, phone, message string) error
}
