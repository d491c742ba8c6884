package console

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kettari/help-bot/internal/bot"
	"github.com/kettari/help-bot/internal/config"
	"github.com/kettari/help-bot/internal/decoration"
	"github.com/kettari/help-bot/internal/handler"
	"github.com/kettari/help-bot/internal/help"
	tele "gopkg.in/telebot.v4"
)

type BotPollCommand struct {
}

func NewBotPollCommand() *BotPollCommand {
	cmd := BotPollCommand{}
	return &cmd
}

func (cmd *BotPollCommand) Name() string {
	return "bot:poll"
}

func (cmd *BotPollCommand) Description() string {
	return "polls Telegram Bot API for messages and processes them"
}

func (cmd *BotPollCommand) Run() error {
	conf := config.GetConfig()
	if err := conf.RequireBotToken(); err != nil {
		return err
	}

	reg, err := loadRegistry(conf)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Stop gracefully after timeout when running from a scheduler
	if conf.PollDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.PollDuration)
		defer cancel()
		slog.Info("timeout for shutdown started", "timeout", conf.PollDuration)
	}

	slog.Info("starting the bot")
	b, err := bot.CreateBot(tele.Settings{
		Token:  conf.BotToken,
		Poller: &tele.LongPoller{Timeout: 1 * time.Second},
	}, reg, conf.Prefix)
	if err != nil {
		return err
	}

	var images help.ImageSource
	if conf.HelpDecoration {
		images = decoration.NewFetcher(conf.DecorationURL, conf.DecorationTimeout)
	}
	svc := help.NewService(reg, helpSettings(conf), images)

	// List bot commands
	if err = b.Bind("help", handler.NewHelpHandler(ctx, svc)); err != nil {
		return err
	}
	if err = b.Bind("start", handler.NewStartHandler(ctx, svc)); err != nil {
		return err
	}
	if err = b.Bind("ping", handler.NewPingHandler()); err != nil {
		return err
	}

	b.Run(ctx)

	slog.Info("bot stopped, exiting")

	return nil
}
