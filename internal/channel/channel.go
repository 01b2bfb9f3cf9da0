// Package channel owns the single bidirectional websocket to the game
// server: dialing, the read loop that feeds the event log, and outbound
// sends. One Channel exists per client session; it is constructed once
// and handed around, never recreated per page.
package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gutocz/CartonildosFRONT/internal/eventlog"
	"github.com/gutocz/CartonildosFRONT/internal/protocol"
	"k8s.io/klog/v2"
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 2 * time.Second
)

// Channel is the client's connection to the game server. It is the only
// writer of the event log; consumers read through their own cursors.
type Channel struct {
	log       *eventlog.Log
	onEvent   func()
	onClose   func()
	conn      *websocket.Conn
	connected atomic.Bool
}

// New creates a disconnected Channel appending into log. onEvent fires
// after every appended event, onClose once when the connection dies for
// any reason. Either callback may be nil.
func New(log *eventlog.Log, onEvent, onClose func()) *Channel {
	return &Channel{log: log, onEvent: onEvent, onClose: onClose}
}

// IsConnected reports whether the websocket is currently open.
func (c *Channel) IsConnected() bool {
	return c.connected.Load()
}

// Connect dials url and starts the read loop. Any previous connection is
// torn down first. There is no auto-reconnect: when the connection drops,
// the session is over until Connect is called again.
func (c *Channel) Connect(ctx context.Context, url string) error {
	if c.conn != nil {
		klog.Infof("channel: closing previous connection before redial")
		c.conn.CloseNow()
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s failed: %w", url, err)
	}

	c.conn = conn
	c.connected.Store(true)
	klog.Infof("channel: connected to %s", url)

	go c.readLoop(conn)
	return nil
}

// Send marshals and writes one event. When disconnected it logs and
// returns: outbound messages are never queued across disconnects, and
// send failures never reach UI code as panics.
func (c *Channel) Send(eventType protocol.EventType, payload any) {
	if !c.connected.Load() || c.conn == nil {
		klog.Warningf("channel: dropping %q send, not connected", eventType)
		return
	}
	env, err := protocol.NewEnvelope(eventType, payload)
	if err != nil {
		klog.Errorf("channel: failed to build %q event: %v", eventType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, env); err != nil {
		klog.Errorf("channel: failed to send %q event: %v", eventType, err)
	}
}

// Close tears down the connection. The read loop notices and runs the
// usual teardown path, so callbacks fire exactly once either way.
func (c *Channel) Close() {
	if c.conn == nil {
		return
	}
	c.conn.Close(websocket.StatusNormalClosure, "client teardown")
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			klog.Infof("channel: read loop ended: %v", err)
			break
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			// Malformed frame: report and drop, the connection stays up.
			klog.Errorf("channel: dropping malformed frame: %v", err)
			continue
		}
		if env.Type == "" {
			klog.Errorf("channel: dropping frame without event type")
			continue
		}

		c.log.Append(env)
		if c.onEvent != nil {
			c.onEvent()
		}
	}

	c.connected.Store(false)
	conn.CloseNow()
	if c.onClose != nil {
		c.onClose()
	}
}
