package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/psychat-dev/psychat/pkg/routepath"
	"github.com/psychat-dev/psychat/pkg/router"
)

// NavRequest is a navigation frame sent by a client.
type NavRequest struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// NavReply answers a NavRequest.
type NavReply struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Match *Match `json:"match,omitempty"`
	Error string `json:"error,omitempty"`
}

// CodeInvalidPath is returned for navigation targets that are not
// same-origin absolute paths.
const CodeInvalidPath = "invalid_path"

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		s.metrics.StreamError("upgrade")
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("conn_id", id)

	s.mu.Lock()
	s.conns[id] = conn
	s.mu.Unlock()
	s.metrics.StreamOpened()
	logger.Debug("navigation stream opened", "remote", r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		_ = conn.Close()
		s.metrics.StreamClosed()
		logger.Debug("navigation stream closed")
	}()

	if s.config.MaxMessageSize > 0 {
		conn.SetReadLimit(s.config.MaxMessageSize)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("navigation stream read error", "error", err)
				s.metrics.StreamError("read")
			}
			return
		}

		reply := s.handleFrame(r, data)

		if err := conn.SetWriteDeadline(deadline(s.config.WriteTimeout)); err != nil {
			return
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("navigation stream write error", "error", err)
			s.metrics.StreamError("write")
			return
		}
	}
}

// handleFrame resolves a single navigation frame.
func (s *Server) handleFrame(r *http.Request, data []byte) NavReply {
	var req NavRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.metrics.StreamError("decode")
		return NavReply{OK: false, Error: CodeInvalidRequest}
	}

	path, err := routepath.ValidateNavPath(req.Path)
	if errors.Is(err, routepath.ErrInvalidPath) {
		return NavReply{ID: req.ID, OK: false, Error: CodeInvalidPath}
	}
	if err != nil {
		// The table reports malformed same-origin paths as not found.
		path = req.Path
	}

	result, err := s.resolver.Resolve(r.Context(), path)
	if err != nil {
		if errors.Is(err, router.ErrRouteNotFound) {
			return NavReply{ID: req.ID, OK: false, Error: CodeRouteNotFound}
		}
		s.logger.Error("stream resolve failed", "path", path, "error", err)
		return NavReply{ID: req.ID, OK: false, Error: "internal"}
	}

	match := NewMatch(result)
	return NavReply{ID: req.ID, OK: true, Match: &match}
}

// deadline returns the absolute deadline for timeout, or the zero time
// when timeout is not positive.
func deadline(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}
