package transport

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/instructionlist"
)

// EventsHandler receives each decoded bundle on the viewer's dispatcher.
type EventsHandler func(list *instructionlist.StringInstructionList, finish bool)

// Client connects a viewer to a remote event service. It satisfies the
// playback controller's Producer contract; bundles arrive through the
// events handler on the given dispatcher.
type Client struct {
	log      *zap.Logger
	conn     *websocket.Conn
	ui       dispatch.Dispatcher
	onEvents EventsHandler

	writeMu sync.Mutex
	done    chan struct{}
}

// Dial connects to a session host.
func Dial(ctx context.Context, url string, ui dispatch.Dispatcher, onEvents EventsHandler, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	conn.SetPingHandler(nil) // default: answer with a pong

	c := &Client{
		log:      log.Named("transport"),
		conn:     conn,
		ui:       ui,
		onEvents: onEvents,
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// RequestInit implements the producer protocol.
func (c *Client) RequestInit(index int) {
	c.write(ClientMessage{Type: MessageInit, Index: index})
}

// RequestEvents implements playback.Producer.
func (c *Client) RequestEvents() {
	c.write(ClientMessage{Type: MessageEvents})
}

// RequestJump implements playback.Producer.
func (c *Client) RequestJump(t battle.Time) {
	c.write(ClientMessage{Type: MessageJump, Time: t})
}

// Close drops the connection; the read loop ends.
func (c *Client) Close() {
	c.conn.Close()
	<-c.done
}

func (c *Client) write(msg ClientMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.log.Debug("request write failed", zap.Error(err))
	}
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var msg ServerMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.log.Debug("connection closed", zap.Error(err))
			return
		}
		if msg.Type != MessageEvents {
			c.log.Warn("unknown reply type", zap.String("type", msg.Type))
			continue
		}
		list, err := decodeBundle(msg.PayloadB64)
		if err != nil {
			//1.- A malformed bundle is logged and skipped; the stream
			// continues with the next frame.
			c.log.Warn("bundle discarded", zap.Error(err))
			continue
		}
		finish := msg.Finish
		c.ui.PostRunnable(func() {
			c.onEvents(list, finish)
		})
	}
}
