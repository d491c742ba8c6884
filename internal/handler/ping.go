package handler

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func NewPingHandler() CommandFunc {
	return func(c tele.Context, args []string) error {
		slog.Info("got command /ping", "from", formatHumanName(c.Sender()), "chat", formatHumanName(c.Chat()))
		return c.Reply("🏓 Pong!")
	}
}
