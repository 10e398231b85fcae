// Package mcp provides a Model Context Protocol interface for the Grid
// Snake Game.
//
// The client is a thin proxy: every tool call is translated into a REST API
// request against a running game server, and the JSON responses are
// reformatted as human-readable text with an ASCII board rendering. This
// keeps the MCP process stateless; any number of MCP clients can drive the
// same sessions through the shared server.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, set_heading, tick, bulk_tick, reset_game
//   - tick_history, list_configs, high_scores
//   - game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
