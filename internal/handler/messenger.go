package handler

import (
	"github.com/kettari/help-bot/internal/help"
	tele "gopkg.in/telebot.v4"
)

// messenger answers in the chat of the update held by the context
type messenger struct {
	c tele.Context
}

func NewMessenger(c tele.Context) help.Messenger {
	return &messenger{c: c}
}

func (m *messenger) Reply(text string, opts ...interface{}) (tele.Editable, error) {
	var (
		msg *tele.Message
		err error
	)
	if m.c.Message() != nil {
		msg, err = m.c.Bot().Reply(m.c.Message(), text, opts...)
	} else {
		msg, err = m.c.Bot().Send(m.c.Recipient(), text, opts...)
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *messenger) SendPhoto(url, caption string, opts ...interface{}) error {
	photo := &tele.Photo{File: tele.FromURL(url), Caption: caption}
	return m.c.Send(photo, opts...)
}

func (m *messenger) Delete(msg tele.Editable) error {
	return m.c.Bot().Delete(msg)
}
