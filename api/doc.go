// Package api provides the REST API server for the Grid Snake Game.
//
// The server exposes session management, game operations, configuration,
// and scoreboard endpoints over HTTP, plus a WebSocket endpoint for live
// spectators. Routing uses gorilla/mux; every mutating operation broadcasts
// the resulting state to the session's WebSocket clients.
//
// Endpoints:
//
//	POST   /api/sessions                    create a session (optional config_id)
//	GET    /api/sessions                    list sessions (sort, order, limit)
//	GET    /api/sessions/{id}               session info
//	DELETE /api/sessions/{id}               delete a session
//	GET    /api/sessions/{id}/state         current game state
//	POST   /api/sessions/{id}/heading       request a heading change
//	POST   /api/sessions/{id}/tick          advance one step (optional heading, reset)
//	POST   /api/sessions/{id}/bulk-tick     advance multiple steps
//	POST   /api/sessions/{id}/reset         restart the session
//	GET    /api/sessions/{id}/history       paginated tick history
//	GET    /api/sessions/{id}/frame.png     rendered board frame (optional max_width)
//	GET    /api/configs                     list configurations
//	POST   /api/configs                     save a configuration
//	GET    /api/configs/{name}              load a configuration
//	GET    /api/scores                      top finished sessions
//	GET    /api/health                      health check
//	GET    /ws?session={id}                 WebSocket spectator stream
//
// Errors are returned as {"error": "..."} with a matching HTTP status.
package api
