package handler

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// CommandFunc handles a bot command. args are the words after the command itself,
// whichever prefix the command was typed with.
type CommandFunc func(c tele.Context, args []string) error

func formatHumanName(guest any) string {
	name := ""
	// guest is telegram user object
	user, ok := guest.(*tele.User)
	if user != nil && ok {
		if len(user.FirstName) > 0 {
			name = user.FirstName
			if len(user.LastName) > 0 {
				name += fmt.Sprintf(" %s", user.LastName)
			}
		}
		if len(user.Username) > 0 {
			name += fmt.Sprintf(" (@%s)", user.Username)
		}
	}
	// guest is telegram chat object
	chat, ok := guest.(*tele.Chat)
	if chat != nil && ok {
		if len(chat.Title) > 0 {
			name = fmt.Sprintf("'%s'", chat.Title)
		}
		if len(chat.Username) > 0 {
			name += fmt.Sprintf(" (@%s)", chat.Username)
		}
	}
	return strings.Trim(name, " ")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
