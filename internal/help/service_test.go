package help

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kettari/help-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type delivery struct {
	kind    string
	text    string
	url     string
	options []interface{}
}

type fakeMessenger struct {
	sent      []delivery
	deleted   []tele.Editable
	replyErr  error
	photoErr  error
	deleteErr error
	nextID    int
}

func (f *fakeMessenger) Reply(text string, opts ...interface{}) (tele.Editable, error) {
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	f.nextID++
	f.sent = append(f.sent, delivery{kind: "reply", text: text, options: opts})
	return &tele.Message{ID: f.nextID}, nil
}

func (f *fakeMessenger) SendPhoto(url, caption string, opts ...interface{}) error {
	if f.photoErr != nil {
		return f.photoErr
	}
	f.sent = append(f.sent, delivery{kind: "photo", text: caption, url: url, options: opts})
	return nil
}

func (f *fakeMessenger) Delete(msg tele.Editable) error {
	f.deleted = append(f.deleted, msg)
	return f.deleteErr
}

type staticImage string

func (s staticImage) Fetch(context.Context) string { return string(s) }

type sliceCatalog []entity.Command

func (c sliceCatalog) All() []entity.Command { return c }

type panicCatalog struct{}

func (panicCatalog) All() []entity.Command { panic("registry exploded") }

func TestService_Detail(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/", Decoration: true}, staticImage("https://img"))
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, " B "))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "reply", m.sent[0].kind)
	assert.Contains(t, m.sent[0].text, "*Command:* `ban`")
	assert.Contains(t, m.sent[0].text, "`/ban <user>`")
	assert.Equal(t, []interface{}{tele.ModeMarkdown}, m.sent[0].options)
	assert.Empty(t, m.deleted)
}

func TestService_ListingPlain(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/"}, staticImage("https://img"))
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, ""))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "reply", m.sent[0].kind)
	assert.Contains(t, m.sent[0].text, "*Total Commands:* 2")
}

func TestService_UnknownKeyFallsBackToListing(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/"}, nil)
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, "nope"))

	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].text, "Command Center")
}

func TestService_StrictLookup(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/", StrictLookup: true}, nil)
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, "no`pe"))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "❓ Command `nope` not found.\n_Use_ `/help` _to see all commands._", m.sent[0].text)
}

func TestService_Decorated(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/", Decoration: true}, staticImage("https://img/1.png"))
	m := &fakeMessenger{deleteErr: errors.New("message to delete not found")}

	require.NoError(t, svc.Handle(context.Background(), m, ""))

	require.Len(t, m.sent, 2)
	assert.Equal(t, loadingMessage, m.sent[0].text)
	assert.Empty(t, m.sent[0].options)
	assert.Equal(t, "photo", m.sent[1].kind)
	assert.Equal(t, "https://img/1.png", m.sent[1].url)
	assert.Contains(t, m.sent[1].text, "*Total Commands:* 2")
	assert.Equal(t, []interface{}{tele.ModeMarkdown}, m.sent[1].options)

	require.Len(t, m.deleted, 1)
	assert.Equal(t, 1, m.deleted[0].(*tele.Message).ID)
}

func TestService_PhotoFailure(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/", Decoration: true}, staticImage("https://img"))
	m := &fakeMessenger{photoErr: errors.New("wrong file identifier")}

	require.NoError(t, svc.Handle(context.Background(), m, ""))

	require.Len(t, m.sent, 2)
	assert.Equal(t, failureMessage, m.sent[1].text)
	assert.Empty(t, m.deleted)
}

func TestService_ReplyFailure(t *testing.T) {
	svc := NewService(sliceCatalog(sampleCommands()), Settings{Prefix: "/"}, nil)
	m := &fakeMessenger{replyErr: errors.New("bot was blocked by the user")}

	assert.NoError(t, svc.Handle(context.Background(), m, "ping"))
	assert.Empty(t, m.sent)
}

func TestService_Panic(t *testing.T) {
	svc := NewService(panicCatalog{}, Settings{Prefix: "/"}, nil)
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, ""))

	require.Len(t, m.sent, 1)
	assert.Equal(t, failureMessage, m.sent[0].text)
}

func TestService_LongListingSkipsDecoration(t *testing.T) {
	var commands sliceCatalog
	for i := 0; i < 60; i++ {
		commands = append(commands, entity.Command{Name: fmt.Sprintf("command%02d", i), Category: "bulk"})
	}
	svc := NewService(commands, Settings{Prefix: "/", Decoration: true}, staticImage("https://img"))
	m := &fakeMessenger{}

	require.NoError(t, svc.Handle(context.Background(), m, ""))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "reply", m.sent[0].kind)
	assert.Contains(t, m.sent[0].text, "*Total Commands:* 60")
	assert.Equal(t, []interface{}{tele.ModeMarkdown}, m.sent[0].options)
	assert.Empty(t, m.deleted)
}
