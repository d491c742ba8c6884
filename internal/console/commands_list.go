package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kettari/help-bot/internal/config"
	"github.com/kettari/help-bot/internal/help"
	"github.com/kettari/help-bot/internal/registry"
)

type CommandsListCommand struct {
	out io.Writer
}

func NewCommandsListCommand() *CommandsListCommand {
	cmd := CommandsListCommand{out: os.Stdout}
	return &cmd
}

func (cmd *CommandsListCommand) Name() string {
	return "commands:list"
}

func (cmd *CommandsListCommand) Description() string {
	return "prints the help listing as the bot would send it"
}

func (cmd *CommandsListCommand) Run() error {
	conf := config.GetConfig()

	reg, err := loadRegistry(conf)
	if err != nil {
		return err
	}
	return cmd.print(reg, helpSettings(conf))
}

func (cmd *CommandsListCommand) print(reg *registry.Registry, settings help.Settings) error {
	listing := help.RenderListing(reg.All(), settings)
	if _, err := fmt.Fprintln(cmd.out, listing); err != nil {
		return err
	}
	slog.Debug("commands listed", "commands_count", reg.Len())
	return nil
}

// loadRegistry returns the embedded catalog merged with the optional commands file
func loadRegistry(conf *config.Config) (*registry.Registry, error) {
	reg, err := registry.Builtin()
	if err != nil {
		return nil, err
	}
	if conf.CommandsFile != "" {
		if err = reg.MergeFile(conf.CommandsFile); err != nil {
			return nil, err
		}
	}
	slog.Debug("commands registry loaded", "commands_count", reg.Len())
	return reg, nil
}

func helpSettings(conf *config.Config) help.Settings {
	return help.Settings{
		Prefix:       conf.Prefix,
		BulletSymbol: conf.Symbol,
		BotName:      conf.BotName,
		Locale:       conf.Locale,
		Decoration:   conf.HelpDecoration,
		StrictLookup: conf.HelpStrict,
	}
}
