package channel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// stubServer accepts one websocket client, pushes the given raw frames and
// stays open until release is closed.
func stubServer(t *testing.T, frames [][]byte, release <-chan struct{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept failed: %v", err)
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		for _, frame := range frames {
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				t.Errorf("server write failed: %v", err)
				return
			}
		}
		<-release
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestReceiveAppendsInArrivalOrder(t *testing.T) {
	frames := [][]byte{
		[]byte(`{"type":"getLeaderResponse","payload":"Ana"}`),
		[]byte(`{"type":"startGameResponse","payload":{"roundMaster":"Bob","question":"q"}}`),
		[]byte(`{"type":"winnerChosen","payload":{"winner":"Ana","points":1}}`),
	}
	release := make(chan struct{})
	srv := stubServer(t, frames, release)
	defer srv.Close()
	defer close(release)

	log := eventlog.New()
	cursor := log.NewCursor()

	var events atomic.Int32
	ch := New(log, func() { events.Add(1) }, nil)

	require.NoError(t, ch.Connect(context.Background(), wsURL(srv)))
	assert.True(t, ch.IsConnected())

	require.Eventually(t, func() bool { return log.Len() == 3 }, waitFor, tick)
	require.Eventually(t, func() bool { return events.Load() == 3 }, waitFor, tick)

	batch := cursor.Drain()
	require.Len(t, batch, 3)
	assert.Equal(t, protocol.EventLeaderResponse, batch[0].Type)
	assert.Equal(t, protocol.EventStartGameResp, batch[1].Type)
	assert.Equal(t, protocol.EventWinnerChosen, batch[2].Type)
}

func TestMalformedFrameIsDroppedConnectionStaysUp(t *testing.T) {
	frames := [][]byte{
		[]byte(`{"type":"getLeaderResponse","payload":"Ana"}`),
		[]byte(`{not json at all`),
		[]byte(`{"payload":"missing type"}`),
		[]byte(`{"type":"winnerChosen","payload":{"winner":"Ana","points":1}}`),
	}
	release := make(chan struct{})
	srv := stubServer(t, frames, release)
	defer srv.Close()
	defer close(release)

	log := eventlog.New()
	ch := New(log, nil, nil)
	require.NoError(t, ch.Connect(context.Background(), wsURL(srv)))

	// Both good frames land, in order, with the garbage skipped.
	require.Eventually(t, func() bool { return log.Len() == 2 }, waitFor, tick)
	assert.True(t, ch.IsConnected())

	batch := log.NewCursor().Drain()
	assert.Equal(t, protocol.EventLeaderResponse, batch[0].Type)
	assert.Equal(t, protocol.EventWinnerChosen, batch[1].Type)
}

func TestServerCloseFlipsConnectivity(t *testing.T) {
	release := make(chan struct{})
	srv := stubServer(t, nil, release)
	defer srv.Close()

	log := eventlog.New()
	closed := make(chan struct{})
	ch := New(log, nil, func() { close(closed) })

	require.NoError(t, ch.Connect(context.Background(), wsURL(srv)))
	require.True(t, ch.IsConnected())

	close(release)

	select {
	case <-closed:
	case <-time.After(waitFor):
		t.Fatal("onClose never fired after server went away")
	}
	require.Eventually(t, func() bool { return !ch.IsConnected() }, waitFor, tick)

	// Sends after the drop are observable no-ops, never panics.
	ch.Send(protocol.EventChat, "Ana: oi")
}

func TestSendBeforeConnectIsNoOp(t *testing.T) {
	ch := New(eventlog.New(), nil, nil)
	assert.False(t, ch.IsConnected())
	ch.Send(protocol.EventGetMyUser, nil)
}

func TestSendDeliversEnvelope(t *testing.T) {
	got := make(chan protocol.Envelope, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept failed: %v", err)
			return
		}
		defer conn.CloseNow()

		var env protocol.Envelope
		if err := wsjson.Read(r.Context(), conn, &env); err != nil {
			t.Errorf("server read failed: %v", err)
			return
		}
		got <- env
	}))
	defer srv.Close()

	ch := New(eventlog.New(), nil, nil)
	require.NoError(t, ch.Connect(context.Background(), wsURL(srv)))

	ch.Send(protocol.EventJoinRoom, "Ana")

	select {
	case env := <-got:
		assert.Equal(t, protocol.EventJoinRoom, env.Type)
		assert.JSONEq(t, `"Ana"`, string(env.Payload))
	case <-time.After(waitFor):
		t.Fatal("server never received the join event")
	}
}
