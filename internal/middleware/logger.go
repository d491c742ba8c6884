package middle

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Logger returns a middle that logs incoming updates.
func Logger(logger *slog.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			logger.Debug("update received",
				"update_id", c.Update().ID,
				"chat_id", chatID(c),
				"sender_id", senderID(c),
				"text", c.Text())
			return next(c)
		}
	}
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

func senderID(c tele.Context) int64 {
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}
