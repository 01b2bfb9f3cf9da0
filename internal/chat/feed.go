// Package chat consumes chat and presence events from the shared event
// log through its own cursor, independent of the game reducer.
package chat

import (
	"fmt"
	"strings"

	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"k8s.io/klog/v2"
)

// Kind classifies a chat entry for rendering.
type Kind int

const (
	KindMine Kind = iota
	KindOther
	KindSystem
)

// Entry is one line in the chat box.
type Entry struct {
	Kind Kind
	Text string
}

// Feed holds the chat history for the current connection.
type Feed struct {
	cursor  *eventlog.Cursor
	entries []Entry
}

// NewFeed returns a feed reading from the start of log.
func NewFeed(log *eventlog.Log) *Feed {
	return &Feed{cursor: log.NewCursor()}
}

// Entries returns the accumulated history, oldest first.
func (f *Feed) Entries() []Entry {
	return f.entries
}

// Sync drains unseen events and appends the chat-relevant ones.
// selfUsername filters out the server echo of our own messages, which we
// already appended locally at send time.
func (f *Feed) Sync(selfUsername string) bool {
	batch := f.cursor.Drain()
	appended := false
	for _, env := range batch {
		if f.apply(env, selfUsername) {
			appended = true
		}
	}
	return appended
}

func (f *Feed) apply(env protocol.Envelope, selfUsername string) bool {
	switch env.Type {
	case protocol.EventPresenceUpdate:
		parsed, err := env.Parse()
		if err != nil {
			klog.Errorf("chat: dropping presence event: %v", err)
			return false
		}
		presence := parsed.(*protocol.Presence)
		verb := "saiu da sala"
		if presence.Joined {
			verb = "entrou na sala"
		}
		f.entries = append(f.entries, Entry{Kind: KindSystem, Text: fmt.Sprintf("%s %s", presence.Username, verb)})
		return true

	case protocol.EventChatBroadcast:
		parsed, err := env.Parse()
		if err != nil {
			klog.Errorf("chat: dropping chat event: %v", err)
			return false
		}
		text := *parsed.(*string)
		switch {
		case selfUsername != "" && strings.HasPrefix(text, selfUsername+":"):
			// Our own message; the local echo already covered it.
			return false
		case strings.Contains(text, "entrou na sala") || strings.Contains(text, "saiu da sala"):
			// Text-based presence from servers without presenceUpdate.
			f.entries = append(f.entries, Entry{Kind: KindSystem, Text: text})
		default:
			f.entries = append(f.entries, Entry{Kind: KindOther, Text: text})
		}
		return true
	}
	return false
}

// AppendLocal echoes a message we just sent, before any server round trip.
func (f *Feed) AppendLocal(text string) {
	f.entries = append(f.entries, Entry{Kind: KindMine, Text: "Você: " + text})
}

// Reset drops the history, for connection teardown.
func (f *Feed) Reset() {
	f.entries = nil
}
