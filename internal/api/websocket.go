package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// handleWS upgrades the connection and keeps reading until the client
// goes away; all outbound traffic flows through the hub.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		// The mobile client connects from an app webview with no stable
		// origin; the server binds to the device/loopback network.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("ws upgrade error")
		return
	}

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("ws client connected")
	c := s.hub.AddClient(conn)

	go func() {
		defer func() {
			s.hub.RemoveClient(c)
			s.log.Debug().Str("remote", r.RemoteAddr).Msg("ws client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
