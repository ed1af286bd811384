package messaging

import "context"

// Notifier delivers a rendered payload to a chat. Delivery is best-effort:
// the state machine commits its status transition before sending and never
// rolls it back on a failed push.
type Notifier interface {
	Send(ctx context.Context, chatID int64, payload Payload) error
}
