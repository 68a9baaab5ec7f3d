// Package websocket pushes board snapshots to browsers watching a session.
//
// A central Hub owns the set of connections, grouped by session ID. Each
// connection gets a read pump, which only keeps the connection alive, and a
// write pump, which delivers one JSON message per frame:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...BoardState...}}
//
// The REST layer calls BroadcastToSession after every edit, search, clear or
// reset. Deleting a session sends a "session_deleted" event instead. Clients
// whose send buffer fills up are dropped.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"), nil)
//	})
//
// Cancelling ctx stops the hub and closes every connection.
package websocket
