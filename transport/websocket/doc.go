// Package websocket provides real-time spectator streaming for the Grid
// Snake Game.
//
// A Hub fans game updates out to every connected client of a session.
// Connections are one-way: the server pushes state snapshots and tick
// results, clients only answer pings. The REST layer broadcasts after each
// mutating operation, so a browser or the desktop viewer can follow a
// session live.
//
// Message events:
//   - "state_update": a full state snapshot (after reset or heading change)
//   - "tick":         a tick result plus the resulting state
//   - "game_over":    the terminal tick of a session
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// In an HTTP handler:
//	hub.ServeWS(w, r, sessionID)
//
//	// After a tick:
//	hub.BroadcastTick(sessionID, result, state)
package websocket
