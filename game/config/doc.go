// Package config provides configuration management for the Grid Snake Game.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation and caching
//   - Default configuration management
//   - Hot reload of edited config files via fsnotify
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board geometry (pixel width, height, cell size)
//   - Starting position, heading, and initial length
//   - Boundary mode (rail, wrap, or wall) and gate placement
//   - Message templates for game events
//   - An optional food seed for deterministic sessions
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("classic")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// Reload configs edited on disk until shutdown
//	go manager.Watch(ctx)
//
// Validation reuses engine.ValidateGameConfig, so a file that loads here is
// guaranteed to start a playable session.
package config
