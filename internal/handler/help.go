package handler

import (
	"context"
	"log/slog"

	"github.com/kettari/help-bot/internal/help"
	tele "gopkg.in/telebot.v4"
)

func NewHelpHandler(ctx context.Context, svc *help.Service) CommandFunc {
	return func(c tele.Context, args []string) error {
		slog.Info("got command /help", "from", formatHumanName(c.Sender()), "chat", formatHumanName(c.Chat()), "args", args)
		return svc.Handle(ctx, NewMessenger(c), firstArg(args))
	}
}
