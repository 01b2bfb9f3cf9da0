package frontend

import (
	"context"
	"fmt"

	"github.com/gutocz/CartonildosFRONT/internal/channel"
	"github.com/gutocz/CartonildosFRONT/internal/chat"
	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/gamestate"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

const defaultWSURL = "ws://localhost:8080"

// GlobalClientState manages the connection, the event log and the derived
// game/chat state for one client session. Exactly one instance exists per
// mounted client; components reach it through the State handle and get
// re-render signals through Listeners.
type GlobalClientState struct {
	Log  *eventlog.Log
	Chan *channel.Channel
	Game *gamestate.Reducer
	Chat *chat.Feed

	// Lobby state (persistent across re-renders)
	PendingName string
	Joining     bool

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

// InitState builds the session singleton: log, reducer, chat feed and the
// channel wired to feed them.
func InitState() {
	if State != nil {
		klog.V(1).Infof("InitState: state already exists")
		return
	}
	klog.V(1).Infof("InitState: creating new state (was nil)")
	log := eventlog.New()
	State = &GlobalClientState{
		Log:       log,
		Game:      gamestate.NewReducer(log),
		Chat:      chat.NewFeed(log),
		Listeners: make(map[string]func()),
	}
	State.Chan = channel.New(log, State.onEvent, State.onClose)
}

// onEvent runs after every event the channel appends: both cursor
// consumers drain whatever arrived, then components get notified.
func (s *GlobalClientState) onEvent() {
	s.Game.Sync()
	s.Chat.Sync(s.Game.View().Me.Username)
	s.Notify()
}

// onClose discards all session state; nothing survives a dropped
// connection (no reconnect-with-resume).
func (s *GlobalClientState) onClose() {
	klog.Infof("GlobalClientState: connection closed, resetting session")
	s.Log.Reset()
	s.Game.Reset()
	s.Chat.Reset()
	s.Joining = false
	s.Notify()
}

// Notify wakes every registered component listener.
func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// Connect dials the game server if not already connected. The endpoint
// comes from the serving environment (cmd/server injects it).
func (s *GlobalClientState) Connect() error {
	if s.Chan.IsConnected() {
		return nil
	}
	wsURL := app.Getenv("CARTONILDOS_WS_URL")
	if wsURL == "" {
		wsURL = defaultWSURL
	}
	klog.Infof("Connect: dialing %s", wsURL)
	return s.Chan.Connect(context.Background(), wsURL)
}

// Teardown closes the connection, e.g. when the app unmounts.
func (s *GlobalClientState) Teardown() {
	s.Chan.Close()
}

// JoinRoom asks the server to seat us under the given username. The
// answer arrives as sucessJoinRoom or an error event.
func (s *GlobalClientState) JoinRoom(username string) {
	if username == "" || s.Joining {
		return
	}
	s.Joining = true
	s.Chan.Send(protocol.EventJoinRoom, username)
}

// RequestIdentity asks for our own user record and the current leader,
// sent whenever the game page mounts.
func (s *GlobalClientState) RequestIdentity() {
	s.Chan.Send(protocol.EventGetMyUser, nil)
	s.Chan.Send(protocol.EventGetLeader, nil)
}

// SendChat publishes a chat line and echoes it locally right away.
func (s *GlobalClientState) SendChat(text string) {
	me := s.Game.View().Me.Username
	if text == "" || me == "" {
		return
	}
	s.Chan.Send(protocol.EventChat, fmt.Sprintf("%s: %s", me, text))
	s.Chat.AppendLocal(text)
	s.Notify()
}

// PlayCard submits a hand card. No-op unless the round allows us to play;
// the already-played flag flips immediately so a second click before the
// server answers cannot submit again. The table itself only changes when
// tableResponse arrives.
func (s *GlobalClientState) PlayCard(cardContent string) {
	v := s.Game.View()
	if !v.CanPlayCard() {
		return
	}
	s.Chan.Send(protocol.EventAddCardToTable, protocol.PlayCard{
		Owner:       v.Me.Username,
		CardContent: cardContent,
	})
	s.Game.MarkPlayed()
	s.Notify()
}

// ClickTableCard resolves a round-master click on a table card: reveal if
// face down, choose its owner as winner if already revealed. Ignored for
// everyone else.
func (s *GlobalClientState) ClickTableCard(owner string) {
	eventType, payload, ok := s.Game.View().JudgeAction(owner)
	if !ok {
		return
	}
	s.Chan.Send(eventType, payload)
}

// ToggleStartRestart starts the game, or restarts it when running.
// Leader only.
func (s *GlobalClientState) ToggleStartRestart() {
	v := s.Game.View()
	if !v.IsLeader() {
		return
	}
	if v.GameRunning {
		s.Chan.Send(protocol.EventRestartGame, nil)
	} else {
		s.Chan.Send(protocol.EventStartGame, nil)
	}
}

// DismissNotice clears the rejection banner.
func (s *GlobalClientState) DismissNotice() {
	s.Joining = false
	s.Game.DismissNotice()
	s.Notify()
}
