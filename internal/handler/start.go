package handler

import (
	"context"
	"log/slog"

	"github.com/kettari/help-bot/internal/help"
	tele "gopkg.in/telebot.v4"
)

func NewStartHandler(ctx context.Context, svc *help.Service) CommandFunc {
	return func(c tele.Context, args []string) error {
		slog.Info("got command /start", "from", formatHumanName(c.Sender()), "chat", formatHumanName(c.Chat()))
		h := NewHelpHandler(ctx, svc)
		return h(c, nil)
	}
}
