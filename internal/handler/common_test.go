package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestFormatHumanName(t *testing.T) {
	tests := []struct {
		name  string
		guest any
		want  string
	}{
		{"full user", &tele.User{FirstName: "Ivan", LastName: "Petrov", Username: "ipetrov"}, "Ivan Petrov (@ipetrov)"},
		{"first name only", &tele.User{FirstName: "Ivan"}, "Ivan"},
		{"username only", &tele.User{Username: "ipetrov"}, "(@ipetrov)"},
		{"group chat", &tele.Chat{Title: "Club", Username: "club_chat"}, "'Club' (@club_chat)"},
		{"nil user", (*tele.User)(nil), ""},
		{"unknown type", 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatHumanName(tt.guest))
		})
	}
}

func TestFirstArg(t *testing.T) {
	assert.Equal(t, "", firstArg(nil))
	assert.Equal(t, "ban", firstArg([]string{"ban", "extra"}))
}
