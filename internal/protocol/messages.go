package protocol

import (
	"encoding/json"
	"fmt"
)

// EventType identifies a websocket event exchanged with the game server.
type EventType string

// Client -> server events.
const (
	EventGetMyUser      EventType = "getMyUser"      // Ask for our own user record
	EventGetLeader      EventType = "getLeader"      // Ask who currently holds host privileges
	EventJoinRoom       EventType = "joinRoom"       // Payload: desired username (plain string)
	EventChat           EventType = "chat"           // Payload: "username: text" when sent by us
	EventStartGame      EventType = "startGame"      // Leader only
	EventRestartGame    EventType = "restartGame"    // Leader only
	EventAddCardToTable EventType = "addCardToTable" // Payload: PlayCard
	EventRevealCard     EventType = "revealCard"     // Payload: Reveal
	EventChooseWinner   EventType = "chooseWinner"   // Payload: ChooseWinner
)

// Server -> client events.
const (
	EventUserResponse   EventType = "getUserResponse"    // Payload: User
	EventUserListUpdate EventType = "userListUpdate"     // Payload: []UserScore
	EventLeaderResponse EventType = "getLeaderResponse"  // Payload: leader username (plain string)
	EventJoinSuccess    EventType = "sucessJoinRoom"     // Payload: JoinSuccess. Wire spelling is the server's.
	EventError          EventType = "error"              // Payload: human-readable string
	EventChatBroadcast  EventType = "chat"               // Payload: plain string
	EventStartGameResp  EventType = "startGameResponse"  // Payload: RoundStart
	EventNextRoundResp  EventType = "nextRoundResponse"  // Payload: RoundStart
	EventRestartResp    EventType = "restartGameResponse"
	EventTableResponse  EventType = "tableResponse"  // Payload: map[username]TableCard
	EventWinnerChosen   EventType = "winnerChosen"   // Payload: Winner
	EventPresenceUpdate EventType = "presenceUpdate" // Payload: Presence
)

// Envelope is the frame exchanged over the websocket: a type tag plus a
// raw payload decoded lazily by Parse.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an Envelope with a marshaled payload.
func NewEnvelope(eventType EventType, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: eventType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %q payload: %w", eventType, err)
	}
	return Envelope{
		Type:    eventType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the envelope payload into the concrete type for the
// event (User, RoundStart, etc.). String-typed payloads come back as *string.
func (e *Envelope) Parse() (any, error) {
	var target any
	switch e.Type {
	case EventUserResponse:
		target = &User{}
	case EventUserListUpdate:
		target = &[]UserScore{}
	case EventLeaderResponse, EventError, EventChatBroadcast, EventJoinRoom:
		target = new(string)
	case EventJoinSuccess:
		target = &JoinSuccess{}
	case EventStartGameResp, EventNextRoundResp:
		target = &RoundStart{}
	case EventRestartResp, EventStartGame, EventRestartGame, EventGetMyUser, EventGetLeader:
		target = new(struct{})
	case EventTableResponse:
		target = &map[string]TableCard{}
	case EventWinnerChosen:
		target = &Winner{}
	case EventPresenceUpdate:
		target = &Presence{}
	case EventAddCardToTable:
		target = &PlayCard{}
	case EventRevealCard:
		target = &Reveal{}
	case EventChooseWinner:
		target = &ChooseWinner{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", e.Type)
	}

	if len(e.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(e.Payload, target)
	return target, err
}
