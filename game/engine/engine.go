package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for simulation operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetHead() Position
	GetBody() []Position
	GetFood() *Position

	// Simulation operations
	SetHeading(requested Heading) bool
	GetHeading() Heading
	Tick() *TickResult
	BulkTick(headings []Heading) []*TickResult

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetTickHistory() []TickRecord
	GetLastTick() *TickRecord
}

// SnakeEngine implements the Engine interface
type SnakeEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new simulation engine with the provided configuration
func NewEngine(config *GameConfig) (*SnakeEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return &SnakeEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
		rng:    newFoodRNG(config),
	}, nil
}

// NewEngineWithDefaults creates a new simulation engine with the classic configuration
func NewEngineWithDefaults() *SnakeEngine {
	config := DefaultGameConfig()
	return &SnakeEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
		rng:    newFoodRNG(config),
	}
}

// newFoodRNG seeds the food sampler: deterministic when the config pins a
// seed, time-seeded otherwise.
func newFoodRNG(config *GameConfig) *rand.Rand {
	seed := config.FoodSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GetState returns the current game state
func (e *SnakeEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used when restoring a snapshot)
func (e *SnakeEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Body) == 0 {
		return fmt.Errorf("state must have at least one body segment")
	}
	e.state = state
	return nil
}

// Reset starts a fresh session from the configured initial state. The food
// sampler is reseeded so a pinned seed replays the same food sequence.
func (e *SnakeEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	e.rng = newFoodRNG(e.config)
	return e.state
}

// IsGameOver returns whether the session has reached the terminal state
func (e *SnakeEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *SnakeEngine) GetScore() int {
	return e.state.Score()
}

// GetHead returns the current head cell
func (e *SnakeEngine) GetHead() Position {
	return e.state.Head()
}

// GetBody returns the body segments, tail first
func (e *SnakeEngine) GetBody() []Position {
	return e.state.Body
}

// GetFood returns the active food cell, or nil when absent
func (e *SnakeEngine) GetFood() *Position {
	return e.state.Food
}

// SetHeading requests a heading change for the next tick; reversals are rejected
func (e *SnakeEngine) SetHeading(requested Heading) bool {
	return e.state.SetHeading(requested)
}

// GetHeading returns the committed heading
func (e *SnakeEngine) GetHeading() Heading {
	return e.state.Heading
}

// Tick advances the simulation by one step
func (e *SnakeEngine) Tick() *TickResult {
	return e.state.AdvanceTick(e.config, e.rng)
}

// BulkTick advances the simulation once per entry. An empty heading keeps
// the committed one; otherwise the heading is applied before the step.
// Ticking stops at the terminal state.
func (e *SnakeEngine) BulkTick(headings []Heading) []*TickResult {
	results := make([]*TickResult, 0, len(headings))

	for _, h := range headings {
		if e.IsGameOver() {
			break
		}
		if h != "" {
			e.SetHeading(h)
		}
		results = append(results, e.Tick())
	}

	return results
}

// GetConfig returns the current game configuration
func (e *SnakeEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the session
func (e *SnakeEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	e.rng = newFoodRNG(config)
	return nil
}

// GetTickHistory returns the complete tick history
func (e *SnakeEngine) GetTickHistory() []TickRecord {
	return e.state.TickHistory
}

// GetLastTick returns the last tick record, or nil before the first tick
func (e *SnakeEngine) GetLastTick() *TickRecord {
	if len(e.state.TickHistory) == 0 {
		return nil
	}
	return &e.state.TickHistory[len(e.state.TickHistory)-1]
}
