package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/kettari/help-bot/internal/entity"
	"github.com/kettari/help-bot/internal/handler"
	middle "github.com/kettari/help-bot/internal/middleware"
	"github.com/kettari/help-bot/internal/registry"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

const (
	commandPrefix = "/"
	pruneInterval = 10 * time.Minute
)

// Bot routes Telegram commands described in the registry to their handlers
type Bot struct {
	bot       *tele.Bot
	registry  *registry.Registry
	prefix    string
	cooldowns *middle.Cooldowns
	routes    map[string]route
}

type route struct {
	command entity.Command
	handler handler.CommandFunc
}

// CreateBot returns a bot answering commands typed with "/" and, if prefix differs, with prefix too
func CreateBot(pref tele.Settings, reg *registry.Registry, prefix string) (*Bot, error) {
	if pref.OnError == nil {
		pref.OnError = func(err error, c tele.Context) {
			slog.Error("bot handler error", "error", err)
		}
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		slog.Error("unable to create bot processor object", "error", err)
		return nil, err
	}
	b.Use(middleware.Recover(func(err error, _ tele.Context) {
		slog.Error("recovered from panic in handler", "error", err)
	}))
	b.Use(middle.Logger(slog.Default()))

	result := &Bot{
		bot:       b,
		registry:  reg,
		prefix:    prefix,
		cooldowns: middle.NewCooldowns(),
		routes:    make(map[string]route),
	}
	if prefix != "" && prefix != commandPrefix {
		b.Handle(tele.OnText, result.onText)
	}
	return result, nil
}

// Bind attaches a handler to a registered command and all of its aliases
func (b *Bot) Bind(name string, h handler.CommandFunc) error {
	cmd, ok := b.registry.Get(name)
	if !ok {
		return fmt.Errorf("command %s is not registered", name)
	}
	r := route{command: cmd, handler: h}
	own := strings.ToLower(cmd.Name)
	if existing, ok := b.routes[own]; ok && existing.command.Name != cmd.Name {
		// names win over aliases, as in help lookup
		slog.Warn("command name was bound as an alias, rebinding", "command", cmd.Name, "alias_of", existing.command.Name)
	}
	b.handle(own, r)
	for _, alias := range cmd.Aliases {
		key := strings.ToLower(alias)
		if existing, ok := b.routes[key]; ok && existing.command.Name != cmd.Name {
			slog.Warn("alias already bound to another command, skipping", "alias", alias, "command", cmd.Name, "bound_to", existing.command.Name)
			continue
		}
		if _, ok := b.registry.Get(key); ok && !strings.EqualFold(key, cmd.Name) {
			slog.Warn("alias is the name of another command, skipping", "alias", alias, "command", cmd.Name)
			continue
		}
		b.handle(key, r)
	}
	slog.Debug("command bound", "command", cmd.Name, "aliases", cmd.Aliases)
	return nil
}

func (b *Bot) handle(key string, r route) {
	b.routes[key] = r
	b.bot.Handle(commandPrefix+key, func(c tele.Context) error {
		return b.dispatch(c, r, c.Args())
	})
}

// Run polls for updates until ctx is done
func (b *Bot) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("stopping the poll")
				b.bot.Stop()
				return
			case <-ticker.C:
				if pruned := b.cooldowns.Prune(pruneInterval); pruned > 0 {
					slog.Debug("cooldowns pruned", "count", pruned)
				}
			}
		}
	}()
	b.bot.Start()
}

func (b *Bot) onText(c tele.Context) error {
	name, args, ok := splitCommand(c.Text(), b.prefix)
	if !ok {
		return nil
	}
	r, ok := b.routes[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return b.dispatch(c, r, args)
}

func (b *Bot) dispatch(c tele.Context, r route, args []string) error {
	var userID int64
	if c.Sender() != nil {
		userID = c.Sender().ID
	}
	period := time.Duration(r.command.Cooldown) * time.Second
	if ok, wait := b.cooldowns.Allow(userID, r.command.Name, period); !ok {
		slog.Info("command on cooldown", "command", r.command.Name, "user_id", userID, "wait", wait)
		return c.Reply(fmt.Sprintf("⏳ Please wait %ds before using %s%s again.",
			int(math.Ceil(wait.Seconds())), b.prefix, r.command.Name))
	}
	return r.handler(c, args)
}

// splitCommand parses "<prefix>name arg1 arg2" typed as plain text
func splitCommand(text, prefix string) (string, []string, bool) {
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
