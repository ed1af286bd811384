package telegram

import (
	"context"

	"pick_day_bot/internal/domain/messaging"
	domainTelegram "pick_day_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier delivers abstract push payloads to a Telegram chat. It satisfies
// messaging.Notifier; callers treat delivery as best-effort.
type Notifier struct {
	client domainTelegram.Client
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, logger *logrus.Entry) *Notifier {
	return &Notifier{client: client, logger: logger}
}

func (n *Notifier) Send(ctx context.Context, chatID int64, payload messaging.Payload) error {
	text, err := RenderPayload(payload)
	if err != nil {
		return err
	}
	if err := n.client.SendMessage(chatID, text, nil); err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"chat_id": chatID,
			"kind":    payload.Kind(),
		}).Warn("Push delivery failed")
		return err
	}
	return nil
}
