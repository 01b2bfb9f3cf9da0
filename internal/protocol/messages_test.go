package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDispatchesByType(t *testing.T) {
	env := Envelope{
		Type:    EventStartGameResp,
		Payload: json.RawMessage(`{"roundMaster":"Bob","question":"___ is fun"}`),
	}

	parsed, err := env.Parse()
	require.NoError(t, err)
	round, ok := parsed.(*RoundStart)
	require.True(t, ok)
	assert.Equal(t, "Bob", round.RoundMaster)
	assert.Equal(t, "___ is fun", round.Question)
}

func TestParseTableSnapshot(t *testing.T) {
	env := Envelope{
		Type:    EventTableResponse,
		Payload: json.RawMessage(`{"Ana":{"cardContent":"pizza","revealed":false}}`),
	}

	parsed, err := env.Parse()
	require.NoError(t, err)
	table := *parsed.(*map[string]TableCard)
	require.Len(t, table, 1)
	assert.Equal(t, TableCard{CardContent: "pizza"}, table["Ana"])
}

func TestParseStringPayloads(t *testing.T) {
	for _, eventType := range []EventType{EventLeaderResponse, EventError, EventChatBroadcast} {
		env := Envelope{Type: eventType, Payload: json.RawMessage(`"hello"`)}
		parsed, err := env.Parse()
		require.NoError(t, err, "type %s", eventType)
		assert.Equal(t, "hello", *parsed.(*string))
	}
}

func TestParseUnknownType(t *testing.T) {
	env := Envelope{Type: "bogus"}
	_, err := env.Parse()
	assert.Error(t, err)
}

func TestParseEmptyPayload(t *testing.T) {
	env := Envelope{Type: EventRestartResp}
	_, err := env.Parse()
	assert.NoError(t, err)
}

func TestNewEnvelopeWireShape(t *testing.T) {
	env, err := NewEnvelope(EventAddCardToTable, PlayCard{Owner: "Ana", CardContent: "pizza"})
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"addCardToTable","payload":{"owner":"Ana","cardContent":"pizza"}}`, string(raw))
}

func TestJoinSuccessWireSpelling(t *testing.T) {
	// The server's historical spelling is part of the protocol.
	assert.Equal(t, EventType("sucessJoinRoom"), EventJoinSuccess)
}
