// Package gamestate folds server events into the client's view of the
// game: round phase, table contents, scores and winner. The server owns
// the rules; this reducer only mirrors what it is told.
package gamestate

import (
	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"k8s.io/klog/v2"
)

// View is the render-ready game state. A nil Winner means no winner has
// been chosen for the current round.
type View struct {
	Me          protocol.User
	Scores      []protocol.UserScore
	Leader      string
	RoundMaster string
	Question    string
	GameRunning bool
	Table       map[string]protocol.TableCard
	Winner      *protocol.Winner

	// AlreadyPlayed is set locally the moment we submit a card, before the
	// server echoes the table, so a double-click cannot submit twice.
	AlreadyPlayed bool

	// Joined flips once the server confirms our joinRoom.
	Joined bool

	// Notice holds the last server rejection, shown until dismissed.
	Notice string
}

// IsLeader reports whether we hold host privileges.
func (v *View) IsLeader() bool {
	return v.Me.Username != "" && v.Me.Username == v.Leader
}

// IsRoundMaster reports whether we judge the current round.
func (v *View) IsRoundMaster() bool {
	return v.Me.Username != "" && v.Me.Username == v.RoundMaster
}

// CanPlayCard reports whether submitting a hand card is currently allowed:
// round running, we are not the judge, and we have not played yet.
func (v *View) CanPlayCard() bool {
	return v.GameRunning && !v.IsRoundMaster() && !v.AlreadyPlayed
}

// CanJudge reports whether table clicks are live for us: only the round
// master, only while the round runs, and not after a winner froze it.
func (v *View) CanJudge() bool {
	return v.GameRunning && v.IsRoundMaster() && v.Winner == nil
}

// JudgeAction resolves a click on the table card owned by owner. An
// unrevealed card asks for a reveal; a revealed one picks its owner as
// winner. ok is false when the click must be ignored (wrong role or
// phase, or no such card).
func (v *View) JudgeAction(owner string) (eventType protocol.EventType, payload any, ok bool) {
	if !v.CanJudge() {
		return "", nil, false
	}
	card, found := v.Table[owner]
	if !found {
		return "", nil, false
	}
	if !card.Revealed {
		return protocol.EventRevealCard, protocol.Reveal{Owner: owner}, true
	}
	return protocol.EventChooseWinner, protocol.ChooseWinner{WinnerUsername: owner}, true
}

// Reducer drains events from the shared log through its own cursor and
// folds them into a View.
type Reducer struct {
	cursor *eventlog.Cursor
	view   View
}

// NewReducer returns a reducer reading from the start of log.
func NewReducer(log *eventlog.Log) *Reducer {
	r := &Reducer{cursor: log.NewCursor()}
	r.view = initialView()
	return r
}

func initialView() View {
	return View{Table: map[string]protocol.TableCard{}}
}

// View returns the current state. The pointer stays owned by the reducer;
// callers render from it and mutate only through reducer methods.
func (r *Reducer) View() *View {
	return &r.view
}

// Sync drains every event that arrived since the last call and applies
// them in arrival order. Reports whether anything was applied.
func (r *Reducer) Sync() bool {
	batch := r.cursor.Drain()
	for i := range batch {
		r.Apply(batch[i])
	}
	return len(batch) > 0
}

// Apply folds a single event into the view. Events this reducer does not
// care about (chat, presence) fall through untouched; payloads that fail
// to parse are logged and skipped, never fatal.
func (r *Reducer) Apply(env protocol.Envelope) {
	parsed, err := env.Parse()
	if err != nil {
		klog.Errorf("gamestate: dropping %q event: %v", env.Type, err)
		return
	}

	switch env.Type {
	case protocol.EventUserResponse:
		user, ok := parsed.(*protocol.User)
		if !ok {
			return
		}
		r.view.Me = *user

	case protocol.EventUserListUpdate:
		scores, ok := parsed.(*[]protocol.UserScore)
		if !ok {
			return
		}
		r.view.Scores = *scores

	case protocol.EventLeaderResponse:
		leader, ok := parsed.(*string)
		if !ok {
			return
		}
		r.view.Leader = *leader

	case protocol.EventJoinSuccess:
		join, ok := parsed.(*protocol.JoinSuccess)
		if !ok {
			return
		}
		r.view.Me = join.User
		r.view.Scores = join.UserList
		r.view.Joined = true

	case protocol.EventStartGameResp, protocol.EventNextRoundResp:
		round, ok := parsed.(*protocol.RoundStart)
		if !ok {
			return
		}
		r.view.GameRunning = true
		r.view.RoundMaster = round.RoundMaster
		r.view.Question = round.Question
		r.view.Table = map[string]protocol.TableCard{}
		r.view.Winner = nil
		r.view.AlreadyPlayed = false

	case protocol.EventRestartResp:
		r.view.GameRunning = false
		r.view.RoundMaster = ""
		r.view.Question = ""
		r.view.Table = map[string]protocol.TableCard{}
		r.view.Winner = nil
		r.view.AlreadyPlayed = false

	case protocol.EventTableResponse:
		table, ok := parsed.(*map[string]protocol.TableCard)
		if !ok {
			return
		}
		// Full snapshot replace. Merging would leave stale entries from
		// players who retracted or left; the protocol has no tombstones.
		r.view.Table = *table

	case protocol.EventWinnerChosen:
		winner, ok := parsed.(*protocol.Winner)
		if !ok {
			return
		}
		r.view.Winner = winner

	case protocol.EventError:
		notice, ok := parsed.(*string)
		if !ok {
			return
		}
		r.view.Notice = *notice
	}
}

// MarkPlayed records the optimistic "already played this round" flag set
// when we submit a card. The table itself only changes on tableResponse.
func (r *Reducer) MarkPlayed() {
	r.view.AlreadyPlayed = true
}

// SetNotice raises a local notice, e.g. client-side validation before a
// request is even sent.
func (r *Reducer) SetNotice(text string) {
	r.view.Notice = text
}

// DismissNotice clears the current rejection banner.
func (r *Reducer) DismissNotice() {
	r.view.Notice = ""
}

// Reset discards everything back to the initial view, for connection
// teardown.
func (r *Reducer) Reset() {
	r.view = initialView()
}
