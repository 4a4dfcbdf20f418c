package server

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 1024
	sendQueueSize  = 64
)

// client bridges one websocket connection to one game session
type client struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
	keys *input.KeyTable

	session *engine.Session
}

func newClient(id uint64, conn *websocket.Conn, keys *input.KeyTable, opts []engine.Option) *client {
	c := &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		keys: keys,
	}

	own := []engine.Option{
		engine.WithPresenter(engine.PresenterFunc(c.present)),
		engine.WithSink(audio.SinkFunc(c.playSound)),
		engine.WithQuitDisabled(),
	}
	c.session = engine.NewSession(append(own, opts...)...)
	return c
}

// run blocks until the connection closes or ctx is cancelled
func (c *client) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump()
	go func() {
		c.readPump()
		cancel()
	}()

	if err := c.session.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("client %d: session: %v", c.id, err)
	}

	// Session goroutine is gone, nothing else writes to send
	close(c.send)
}

// present and playSound run on the session goroutine
func (c *client) present(f engine.Frame) {
	msg, err := encodeFrame(f)
	if err != nil {
		log.Printf("client %d: encode state: %v", c.id, err)
		return
	}
	c.enqueue(msg)
}

func (c *client) playSound(sig game.Signal) {
	msg, err := encodeSound(sig)
	if err != nil {
		log.Printf("client %d: encode sound: %v", c.id, err)
		return
	}
	c.enqueue(msg)
}

// enqueue drops the message when the browser falls behind; the next frame supersedes it
func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Printf("client %d: send queue full, dropping message", c.id)
	}
}

func (c *client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("client %d: read: %v", c.id, err)
			}
			return
		}

		in, err := decodeIntent(raw, c.keys)
		if err != nil {
			log.Printf("client %d: %v", c.id, err)
			continue
		}
		if in.Type == input.IntentNone {
			continue
		}
		if !c.session.Submit(in) {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("client %d: write: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
