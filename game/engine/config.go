package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate geometry
	if config.CellSize < 1 {
		return fmt.Errorf("config validation: cell_size must be positive, got %d", config.CellSize)
	}
	if config.Width <= 0 || config.Width%config.CellSize != 0 {
		return fmt.Errorf("config validation: width must be a positive multiple of cell_size (%d), got %d",
			config.CellSize, config.Width)
	}
	if config.Height <= 0 || config.Height%config.CellSize != 0 {
		return fmt.Errorf("config validation: height must be a positive multiple of cell_size (%d), got %d",
			config.CellSize, config.Height)
	}

	cols := config.GridColumns()
	rows := config.GridRows()
	if cols < MinGridCells || cols > MaxGridCells {
		return fmt.Errorf("config validation: grid must be between %d and %d cells wide, got %d",
			MinGridCells, MaxGridCells, cols)
	}
	if rows < MinGridCells || rows > MaxGridCells {
		return fmt.Errorf("config validation: grid must be between %d and %d cells tall, got %d",
			MinGridCells, MaxGridCells, rows)
	}

	// Validate start cell
	if config.StartX < 0 || config.StartX >= config.Width || config.StartX%config.CellSize != 0 {
		return fmt.Errorf("config validation: start_x must be a cell-aligned coordinate inside [0, %d), got %d",
			config.Width, config.StartX)
	}
	if config.StartY < 0 || config.StartY >= config.Height || config.StartY%config.CellSize != 0 {
		return fmt.Errorf("config validation: start_y must be a cell-aligned coordinate inside [0, %d), got %d",
			config.Height, config.StartY)
	}

	// Validate heading
	if !config.StartHeading.Valid() {
		return fmt.Errorf("config validation: start_heading must be one of up/down/left/right, got %q",
			config.StartHeading)
	}

	// Validate initial body: every seeded segment must fit on the grid
	if config.InitialLength < MinInitialLength {
		return fmt.Errorf("config validation: initial_length must be at least %d, got %d",
			MinInitialLength, config.InitialLength)
	}
	last := initialBody(config)[config.InitialLength-1]
	if last.X < 0 || last.X >= config.Width || last.Y < 0 || last.Y >= config.Height {
		return fmt.Errorf("config validation: initial body of length %d starting at (%d,%d) heading %s leaves the grid",
			config.InitialLength, config.StartX, config.StartY, config.StartHeading)
	}

	// Validate boundary policy
	if !config.BoundaryMode.Valid() {
		return fmt.Errorf("config validation: boundary_mode must be one of rail/wrap/wall, got %q",
			config.BoundaryMode)
	}
	if config.BoundaryMode == BoundaryRail {
		if config.GateRow < 0 || config.GateRow >= config.Height || config.GateRow%config.CellSize != 0 {
			return fmt.Errorf("config validation: gate_row must be a cell-aligned coordinate inside [0, %d), got %d",
				config.Height, config.GateRow)
		}
		if config.GateCol < 0 || config.GateCol >= config.Width || config.GateCol%config.CellSize != 0 {
			return fmt.Errorf("config validation: gate_col must be a cell-aligned coordinate inside [0, %d), got %d",
				config.Width, config.GateCol)
		}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.FoodEaten == "" {
		return fmt.Errorf("config validation: messages.food_eaten is required")
	}
	if config.Messages.SelfCollision == "" {
		return fmt.Errorf("config validation: messages.self_collision is required")
	}
	if !strings.Contains(config.Messages.FoodEaten, "%d") {
		return fmt.Errorf("config validation: messages.food_eaten must contain %%d for score")
	}
	if config.BoundaryMode == BoundaryRail && config.Messages.GateHit == "" {
		return fmt.Errorf("config validation: messages.gate_hit is required when boundary_mode is rail")
	}
	if config.BoundaryMode == BoundaryWall && config.Messages.WallHit == "" {
		return fmt.Errorf("config validation: messages.wall_hit is required when boundary_mode is wall")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// DefaultGameConfig returns the classic arcade setup: an 800x600 board of
// 20px cells, a three-segment snake starting at (200,200) heading right,
// and the rail boundary with the gate on the start row/column.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:          "classic",
		Description:   "Classic 800x600 board with rail walls",
		Width:         800,
		Height:        600,
		CellSize:      20,
		InitialLength: 3,
		StartX:        200,
		StartY:        200,
		StartHeading:  Right,
		BoundaryMode:  BoundaryRail,
		GateRow:       200,
		GateCol:       200,
	}
	config.Messages.Welcome = "Welcome! Steer the snake, eat the food, avoid yourself."
	config.Messages.FoodEaten = "Food eaten! Score: %d"
	config.Messages.SelfCollision = "You bit yourself! Game Over!"
	config.Messages.GateHit = "You hit the gate! Game Over!"
	config.Messages.WallHit = "You hit the wall! Game Over!"
	config.Messages.Redirected = "Riding the rail along the wall"
	config.Messages.TickStatus = "Length: %d"
	return config
}

// initialBody lays the seeded segments out from the start cell along the
// start heading, tail first, head last.
func initialBody(config *GameConfig) []Position {
	body := make([]Position, config.InitialLength)
	pos := Position{X: config.StartX, Y: config.StartY}
	for i := 0; i < config.InitialLength; i++ {
		body[i] = pos
		pos = pos.Step(config.StartHeading, config.CellSize)
	}
	return body
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	return &GameState{
		Body:          initialBody(config),
		Heading:       config.StartHeading,
		Food:          nil, // spawned at the end of the first tick
		InitialLength: config.InitialLength,
		GameOver:      false,
		Ticks:         0,
		Message:       config.Messages.Welcome,
		ConfigName:    config.Name,
		TickHistory:   []TickRecord{},
	}
}
