package chat

import (
	"testing"

	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEnv(t *testing.T, eventType protocol.EventType, payload any) protocol.Envelope {
	t.Helper()
	env, err := protocol.NewEnvelope(eventType, payload)
	require.NoError(t, err)
	return env
}

func TestChatClassification(t *testing.T) {
	log := eventlog.New()
	feed := NewFeed(log)

	log.Append(mustEnv(t, protocol.EventChatBroadcast, "Bob: oi"))
	log.Append(mustEnv(t, protocol.EventChatBroadcast, "Carol entrou na sala"))
	log.Append(mustEnv(t, protocol.EventChatBroadcast, "Ana: tudo bem?"))

	assert.True(t, feed.Sync("Ana"))

	entries := feed.Entries()
	require.Len(t, entries, 2, "own echo must be filtered out")
	assert.Equal(t, Entry{Kind: KindOther, Text: "Bob: oi"}, entries[0])
	assert.Equal(t, Entry{Kind: KindSystem, Text: "Carol entrou na sala"}, entries[1])
}

func TestStructuredPresence(t *testing.T) {
	log := eventlog.New()
	feed := NewFeed(log)

	log.Append(mustEnv(t, protocol.EventPresenceUpdate, protocol.Presence{Username: "Bob", Joined: true}))
	log.Append(mustEnv(t, protocol.EventPresenceUpdate, protocol.Presence{Username: "Bob", Joined: false}))
	feed.Sync("Ana")

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Kind: KindSystem, Text: "Bob entrou na sala"}, entries[0])
	assert.Equal(t, Entry{Kind: KindSystem, Text: "Bob saiu da sala"}, entries[1])
}

func TestLocalEcho(t *testing.T) {
	log := eventlog.New()
	feed := NewFeed(log)

	feed.AppendLocal("oi pessoal")

	entries := feed.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Kind: KindMine, Text: "Você: oi pessoal"}, entries[0])
}

func TestSyncExactlyOnce(t *testing.T) {
	log := eventlog.New()
	feed := NewFeed(log)

	log.Append(mustEnv(t, protocol.EventChatBroadcast, "Bob: oi"))
	assert.True(t, feed.Sync("Ana"))
	assert.False(t, feed.Sync("Ana"))
	assert.Len(t, feed.Entries(), 1)
}

func TestGameEventsAreIgnored(t *testing.T) {
	log := eventlog.New()
	feed := NewFeed(log)

	log.Append(mustEnv(t, protocol.EventStartGameResp, protocol.RoundStart{RoundMaster: "Bob", Question: "q"}))
	log.Append(mustEnv(t, protocol.EventUserListUpdate, []protocol.UserScore{{Username: "Ana"}}))

	assert.False(t, feed.Sync("Ana"))
	assert.Empty(t, feed.Entries())
}
