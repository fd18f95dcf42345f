package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vbonduro/smartbite/internal/domain"
)

const (
	writeWait       = 10 * time.Second
	defaultPongWait = 60 * time.Second

	// base64 inflates uploads by a third; leave room for the JSON envelope.
	maxFrameSize = maxPhotoSize*4/3 + 64*1024
)

// connection is the chat.Sender for one WebSocket client. Frames are queued
// to a buffered channel and written by writePump. Frames queued after the
// client has gone are dropped.
type connection struct {
	ws         *websocket.Conn
	send       chan []byte
	done       chan struct{}
	pingPeriod time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	actions map[string]domain.Action
}

func newConnection(ws *websocket.Conn, pingPeriod time.Duration, logger *slog.Logger) *connection {
	return &connection{
		ws:         ws,
		send:       make(chan []byte, 64),
		done:       make(chan struct{}),
		pingPeriod: pingPeriod,
		logger:     logger,
		actions:    make(map[string]domain.Action),
	}
}

func (c *connection) Send(ctx context.Context, msg *domain.Message) error {
	c.mu.Lock()
	for _, a := range msg.Actions {
		c.actions[a.ID] = a
	}
	c.mu.Unlock()
	return c.queue(ctx, messageOut{Type: frameMessage, Message: *msg})
}

func (c *connection) Update(ctx context.Context, msg *domain.Message) error {
	return c.queue(ctx, updateOut{Type: frameUpdate, ID: msg.ID, Content: msg.Content})
}

func (c *connection) RemoveAction(ctx context.Context, action domain.Action) error {
	c.mu.Lock()
	delete(c.actions, action.ID)
	c.mu.Unlock()
	return c.queue(ctx, removeActionOut{Type: frameRemoveAction, ActionID: action.ID})
}

// action returns the live action with the given id.
func (c *connection) action(id string) (domain.Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.actions[id]
	return a, ok
}

func (c *connection) sendError(ctx context.Context, code, message string) {
	if err := c.queue(ctx, errorOut{Type: frameError, Code: code, Message: message}); err != nil {
		c.logger.Error("failed to send error frame", "code", code, "error", err)
	}
}

func (c *connection) queue(ctx context.Context, frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		c.logger.Debug("dropping frame for closed connection")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
// It returns when send is closed or a write fails.
func (c *connection) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.ws.Close(); err != nil {
			c.logger.Debug("websocket close", "error", err)
		}
	}()

	for {
		select {
		case data, ok := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("failed to write frame", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close stops writePump after it has flushed the queued frames and waits for
// it to exit.
func (c *connection) close() {
	close(c.send)
	<-c.done
}

// frameQueue hands frames from the read loop to the session worker in the
// order they arrived. push never blocks so the read loop keeps answering
// pings while a frame is being handled.
type frameQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames [][]byte
	closed bool
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *frameQueue) push(data []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.frames = append(q.frames, data)
	q.cond.Signal()
}

// pop waits for the next frame. It returns false once the queue is closed.
func (q *frameQueue) pop() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.frames) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return nil, false
	}
	data := q.frames[0]
	q.frames[0] = nil
	q.frames = q.frames[1:]
	return data, true
}

// close wakes the worker and discards frames it has not started. It returns
// the number discarded.
func (q *frameQueue) close() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	dropped := len(q.frames)
	q.frames = nil
	q.cond.Broadcast()
	return dropped
}
