package help

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kettari/help-bot/internal/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	defaultCategory = "Misc"
	defaultBullet   = "•"
	defaultBotName  = "Baka-Chan"
	noUsage         = "No usage instructions."
	noAliases       = "None"
)

// Resolve finds a command by name first and by alias second. The key is trimmed and
// compared case-insensitively; aliases are searched in enumeration order.
func Resolve(key string, commands []entity.Command) (entity.Command, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return entity.Command{}, false
	}
	for _, cmd := range commands {
		if strings.EqualFold(cmd.Name, key) {
			return cmd, true
		}
	}
	for _, cmd := range commands {
		if cmd.HasAlias(key) {
			return cmd, true
		}
	}
	return entity.Command{}, false
}

// RenderDetail formats a single command card in Telegram Markdown
func RenderDetail(cmd entity.Command, prefix string) string {
	usage := noUsage
	if len(cmd.Guide) > 0 {
		lines := make([]string, 0, len(cmd.Guide))
		for _, variant := range cmd.Guide {
			lines = append(lines, fmt.Sprintf("`%s%s %s`", prefix, cmd.Name, variant))
		}
		usage = strings.Join(lines, "\n")
	}

	aliases := noAliases
	if len(cmd.Aliases) > 0 {
		quoted := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			quoted = append(quoted, fmt.Sprintf("`%s`", alias))
		}
		aliases = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📘 *Command:* `%s`\n\n", cmd.Name))
	sb.WriteString(fmt.Sprintf("*Description:*\n%s\n\n", cmd.Description))
	sb.WriteString(fmt.Sprintf("*Usage:*\n%s\n\n", usage))
	sb.WriteString(fmt.Sprintf("*Category:* %s\n", categoryLabel(cmd.Category)))
	sb.WriteString(fmt.Sprintf("*Cooldown:* %ds\n\n", cmd.Cooldown))
	sb.WriteString(fmt.Sprintf("*Aliases:*\n%s", aliases))
	return sb.String()
}

// RenderListing formats every visible command grouped by category
func RenderListing(commands []entity.Command, settings Settings) string {
	visible := Visible(commands, settings.Locale)

	bullet := settings.BulletSymbol
	if bullet == "" {
		bullet = defaultBullet
	}
	botName := settings.BotName
	if botName == "" {
		botName = defaultBotName
	}

	groups := make(map[string][]string)
	var labels []string
	for _, cmd := range visible {
		label := categoryLabel(cmd.Category)
		if _, ok := groups[label]; !ok {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], fmt.Sprintf("%s %s%s", bullet, settings.Prefix, cmd.Name))
	}
	sort.Strings(labels)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*💫 Welcome to %s Command Center*\n", botName))
	sb.WriteString("_Here’s a full list of my available commands, grouped by category._\n\n")
	for _, label := range labels {
		sb.WriteString(fmt.Sprintf("╭─── ✦ *%s*\n", label))
		for _, line := range groups[label] {
			sb.WriteString("│ " + line + "\n")
		}
		sb.WriteString("╰───────────────✦\n\n")
	}
	sb.WriteString(fmt.Sprintf("✨ *Total Commands:* %d\n", len(visible)))
	sb.WriteString(fmt.Sprintf("_Use_ `%shelp <command>` _to view detailed info._", settings.Prefix))
	return sb.String()
}

// Visible drops hidden commands and sorts the rest by name using the locale collation
func Visible(commands []entity.Command, locale string) []entity.Command {
	result := make([]entity.Command, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Hidden() {
			continue
		}
		result = append(result, cmd)
	}

	c := collate.New(collationTag(locale))
	sort.SliceStable(result, func(i, j int) bool {
		return c.CompareString(result[i].Name, result[j].Name) < 0
	})
	return result
}

func collationTag(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		slog.Warn("unknown collation locale, falling back to English", "locale", locale, "error", err)
		return language.English
	}
	return tag
}

func categoryLabel(category string) string {
	if category == "" {
		return defaultCategory
	}
	return capitalize(category)
}

// capitalize upper-cases the first letter and keeps the rest as is
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
