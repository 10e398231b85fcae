// Package engine provides the core grid simulation for the Snake Game.
//
// The engine package implements the game mechanics including:
//   - Per-tick body advancement and self-collision detection
//   - Heading control with reversal rejection
//   - Boundary policy (rail, wrap or wall) with the rail-mode gate
//   - Food placement and consumption
//   - Game state management, configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for simulation operations,
// implemented by SnakeEngine. GameState represents the current simulation
// state, while GameConfig defines the board geometry and rules loaded from
// JSON files.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Steer and advance one tick
//	eng.SetHeading(engine.Up)
//	result := eng.Tick()
//
// Game Rules:
//
// The snake advances one cell per tick in the committed heading. Eating the
// food grows the body by one segment and scores a point; otherwise the tail
// cell is vacated and the length stays constant. The session ends when the
// head lands on the body, or on boundary contact according to the
// configured boundary policy. The simulation is single-threaded and
// turn-synchronous: the driving layer owns the clock and input polling.
package engine
