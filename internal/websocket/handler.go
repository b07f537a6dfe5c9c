package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers conn as a watcher of sessionID and blocks until it closes.
// initial, when non-nil, is the first message the client receives.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string, initial []byte, onMessage MessageHandler) {
	client := &Client{Hub: hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 256), onMessage: onMessage}
	if initial != nil {
		client.Send <- initial
	}
	if !hub.join(client) {
		conn.Close()
		return
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
