// Package session manages in-memory game sessions for the Grid Snake Game.
//
// Each session pairs a short random ID with its own engine instance and the
// configuration it was created from. Lookups are case-insensitive. Sessions
// are never written to disk; expiry cleanup and restarts discard them, and
// finished results are recorded separately on the scoreboard.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create with a generated 4-hex-character ID
//	sess, err := manager.Create("", config)
//
//	// Periodic cleanup of idle sessions
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
