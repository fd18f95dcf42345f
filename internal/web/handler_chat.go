package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vbonduro/smartbite/internal/chat"
	"github.com/vbonduro/smartbite/internal/domain"
)

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w, nil, "chat.html"); err != nil {
		s.logger.Error("render chat page failed", "error", err)
	}
}

// handleWebSocket runs one chat session for the lifetime of the connection.
// Events from the client are handled one at a time in the order received,
// on a worker goroutine so the read loop keeps servicing pings meanwhile.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	ws.SetReadLimit(maxFrameSize)

	// The session outlives the upgrade request; it ends when the client goes.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	conn := newConnection(ws, s.pongWait*9/10, s.logger)
	go conn.writePump()
	defer conn.close()

	sessionID := uuid.NewString()
	logger := s.logger.With("session_id", sessionID)
	if _, err := s.sessions.Create(ctx, sessionID); err != nil {
		logger.Error("failed to record session", "error", err)
	}

	if err := conn.queue(ctx, sessionOut{Type: frameSession, SessionID: sessionID}); err != nil {
		logger.Error("failed to send session frame", "error", err)
		return
	}

	sess := chat.NewSession(sessionID, chat.WithTranscript(conn, sessionID, s.messages, logger))
	if err := s.assistant.OnSessionStart(ctx, sess); err != nil {
		logger.Error("session start failed", "error", err)
		return
	}

	frames := newFrameQueue()
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		for {
			data, ok := frames.pop()
			if !ok {
				return
			}
			s.handleFrame(ctx, conn, sess, data)
		}
	}()

	s.readLoop(conn, sess, frames)
	if dropped := frames.close(); dropped > 0 {
		logger.Info("discarding frames from closed session", "count", dropped)
	}
	<-workerDone

	if err := s.assistant.OnSessionEnd(ctx, sess); err != nil {
		logger.Error("session end failed", "error", err)
	}
	if err := s.sessions.End(ctx, sessionID); err != nil {
		logger.Error("failed to record session end", "error", err)
	}
}

// readLoop queues client frames until the connection fails or closes. The
// read deadline is extended by every pong and every frame.
func (s *Server) readLoop(conn *connection, sess *chat.Session, frames *frameQueue) {
	extend := func() error {
		return conn.ws.SetReadDeadline(time.Now().Add(s.pongWait))
	}
	if err := extend(); err != nil {
		return
	}
	conn.ws.SetPongHandler(func(string) error { return extend() })

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.logger.Error("websocket read failed", "session_id", sess.ID, "error", err)
			}
			return
		}
		if err := extend(); err != nil {
			return
		}
		frames.push(data)
	}
}

func (s *Server) handleFrame(ctx context.Context, conn *connection, sess *chat.Session, data []byte) {
	var base baseFrame
	if err := json.Unmarshal(data, &base); err != nil {
		conn.sendError(ctx, errCodeInvalidMessage, "invalid JSON frame")
		return
	}

	switch base.Type {
	case frameMessage:
		s.handleMessageFrame(ctx, conn, sess, data)
	case frameAction:
		s.handleActionFrame(ctx, conn, sess, data)
	default:
		conn.sendError(ctx, errCodeInvalidMessage, "unknown frame type: "+base.Type)
	}
}

func (s *Server) handleMessageFrame(ctx context.Context, conn *connection, sess *chat.Session, data []byte) {
	var msg messageIn
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.sendError(ctx, errCodeInvalidMessage, "invalid message frame")
		return
	}

	in := domain.IncomingMessage{Content: msg.Content}
	img, err := s.firstImage(ctx, sess.ID, msg.Elements)
	if err != nil {
		s.logger.Warn("upload rejected", "session_id", sess.ID, "error", err)
		conn.sendError(ctx, errCodeInvalidUpload, err.Error())
		return
	}
	if img != nil {
		in.Elements = []domain.Element{*img}
	}

	if err := s.assistant.OnMessage(ctx, sess, in); err != nil {
		s.logger.Error("message handling failed", "session_id", sess.ID, "error", err)
		conn.sendError(ctx, errCodeInternal, "failed to handle message")
	}
}

func (s *Server) handleActionFrame(ctx context.Context, conn *connection, sess *chat.Session, data []byte) {
	var msg actionIn
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.sendError(ctx, errCodeInvalidMessage, "invalid action frame")
		return
	}

	action, ok := conn.action(msg.ActionID)
	if !ok {
		conn.sendError(ctx, errCodeUnknownAction, "action is not available")
		return
	}

	if err := s.assistant.OnAction(ctx, sess, action); err != nil {
		if errors.Is(err, chat.ErrUnknownAction) {
			s.logger.Warn("unregistered action", "session_id", sess.ID, "name", action.Name)
			conn.sendError(ctx, errCodeUnknownAction, err.Error())
			return
		}
		s.logger.Error("action handling failed", "session_id", sess.ID, "name", action.Name, "error", err)
		conn.sendError(ctx, errCodeInternal, "failed to handle action")
	}
}
