// Package service provides the business logic layer for the Grid Snake Game.
//
// The service package sits between the transports (REST, WebSocket, MCP) and
// the engine. It owns no storage itself: sessions, configurations, and the
// scoreboard are injected through the SessionManager, ConfigManager, and
// Scoreboard interfaces, so transports depend on behavior rather than on
// concrete stores.
//
// Core Operations:
//   - Session lifecycle (create, get, list, delete)
//   - Heading changes and tick advancement (single and bulk)
//   - Game state and paginated tick history retrieval
//   - Configuration listing, loading, and saving
//   - High score retrieval for finished sessions
//
// When a tick moves a session into the terminal state, the service records
// the final result on the scoreboard before returning. In-flight sessions
// are never persisted.
//
// Usage:
//
//	svc := service.NewGameService(sessionManager, configManager, scoreboard)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	svc.SetHeading(ctx, info.ID, engine.Down)
//	outcome, err := svc.Tick(ctx, info.ID, false)
package service
