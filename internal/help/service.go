package help

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kettari/help-bot/internal/entity"
	tele "gopkg.in/telebot.v4"
)

const (
	loadingMessage = "⌛ Generating help list..."
	failureMessage = "⚠️ Oops! Something went wrong while showing help."

	// Telegram limit for photo captions
	maxCaptionLength = 1024
)

// Catalog enumerates registered commands
type Catalog interface {
	All() []entity.Command
}

// ImageSource supplies a decorative image URL. It must not fail: implementations
// fall back to a constant URL themselves.
type ImageSource interface {
	Fetch(ctx context.Context) string
}

// Messenger delivers help output to the chat the request came from
type Messenger interface {
	Reply(text string, opts ...interface{}) (tele.Editable, error)
	SendPhoto(url, caption string, opts ...interface{}) error
	Delete(msg tele.Editable) error
}

type Service struct {
	catalog  Catalog
	settings Settings
	images   ImageSource
}

// NewService wires the help command. images may be nil when decoration is disabled.
func NewService(catalog Catalog, settings Settings, images ImageSource) *Service {
	return &Service{catalog: catalog, settings: settings, images: images}
}

func (s *Service) Settings() Settings {
	return s.settings
}

// Handle answers a help request. Failures are logged and reported to the user with
// a fixed message, so the returned error is always nil.
func (s *Service) Handle(ctx context.Context, m Messenger, key string) error {
	if err := s.respond(ctx, m, key); err != nil {
		slog.Error("error in help command", "key", key, "error", err)
		if _, err = m.Reply(failureMessage, tele.ModeMarkdown); err != nil {
			slog.Error("failed to send help failure notice", "error", err)
		}
	}
	return nil
}

func (s *Service) respond(ctx context.Context, m Messenger, key string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while showing help: %v", r)
		}
	}()

	commands := s.catalog.All()
	key = strings.ToLower(strings.TrimSpace(key))
	if key != "" {
		if cmd, ok := Resolve(key, commands); ok {
			slog.Debug("showing command detail", "command", cmd.Name)
			_, err = m.Reply(RenderDetail(cmd, s.settings.Prefix), tele.ModeMarkdown)
			return err
		}
		if s.settings.StrictLookup {
			_, err = m.Reply(notFound(key, s.settings.Prefix), tele.ModeMarkdown)
			return err
		}
		slog.Debug("command not found, showing full listing", "key", key)
	}

	listing := RenderListing(commands, s.settings)
	if !s.settings.Decoration || s.images == nil {
		_, err = m.Reply(listing, tele.ModeMarkdown)
		return err
	}
	if utf8.RuneCountInString(listing) > maxCaptionLength {
		slog.Debug("help listing too long for a caption, sending as text", "length", utf8.RuneCountInString(listing))
		_, err = m.Reply(listing, tele.ModeMarkdown)
		return err
	}

	loading, err := m.Reply(loadingMessage)
	if err != nil {
		return fmt.Errorf("failed to send loading message: %w", err)
	}
	url := s.images.Fetch(ctx)
	if err = m.SendPhoto(url, listing, tele.ModeMarkdown); err != nil {
		return fmt.Errorf("failed to send help photo: %w", err)
	}
	if err := m.Delete(loading); err != nil {
		slog.Debug("failed to delete loading message", "error", err)
	}
	return nil
}

func notFound(key, prefix string) string {
	key = strings.ReplaceAll(key, "`", "")
	return fmt.Sprintf("❓ Command `%s` not found.\n_Use_ `%shelp` _to see all commands._", key, prefix)
}
