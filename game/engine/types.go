package engine

// Heading represents an axis-aligned movement direction
type Heading string

const (
	Up    Heading = "up"
	Down  Heading = "down"
	Left  Heading = "left"
	Right Heading = "right"

	// Validation constants
	MinGridCells        = 4
	MaxGridCells        = 256
	MinInitialLength    = 1
	MaxBulkTicks        = 200
	WebSocketBufferSize = 256
)

// Valid reports whether h is one of the four recognized headings
func (h Heading) Valid() bool {
	switch h {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Opposite returns the reversal of h; reversals are rejected by SetHeading
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return ""
}

// BoundaryMode selects what happens when the head would leave the grid
type BoundaryMode string

const (
	// BoundaryRail redirects the heading along the wall; contact on the
	// gate row/column is terminal.
	BoundaryRail BoundaryMode = "rail"
	// BoundaryWrap wraps the head toroidally to the opposite edge.
	BoundaryWrap BoundaryMode = "wrap"
	// BoundaryWall ends the game on any boundary contact.
	BoundaryWall BoundaryMode = "wall"
)

// Valid reports whether m is a recognized boundary mode
func (m BoundaryMode) Valid() bool {
	switch m {
	case BoundaryRail, BoundaryWrap, BoundaryWall:
		return true
	}
	return false
}

// Position represents x,y pixel coordinates, both multiples of the cell size
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the cell adjacent to p in the given heading
func (p Position) Step(h Heading, cellSize int) Position {
	switch h {
	case Up:
		return Position{X: p.X, Y: p.Y - cellSize}
	case Down:
		return Position{X: p.X, Y: p.Y + cellSize}
	case Left:
		return Position{X: p.X - cellSize, Y: p.Y}
	case Right:
		return Position{X: p.X + cellSize, Y: p.Y}
	}
	return p
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	CellSize      int          `json:"cell_size"`
	InitialLength int          `json:"initial_length"`
	StartX        int          `json:"start_x"`
	StartY        int          `json:"start_y"`
	StartHeading  Heading      `json:"start_heading"`
	BoundaryMode  BoundaryMode `json:"boundary_mode"`
	GateRow       int          `json:"gate_row"`
	GateCol       int          `json:"gate_col"`
	FoodSeed      int64        `json:"food_seed,omitempty"`
	Messages      struct {
		Welcome       string `json:"welcome"`
		FoodEaten     string `json:"food_eaten"`
		SelfCollision string `json:"self_collision"`
		GateHit       string `json:"gate_hit"`
		WallHit       string `json:"wall_hit"`
		Redirected    string `json:"redirected"`
		TickStatus    string `json:"tick_status"`
	} `json:"messages"`
}

// GridColumns returns the number of cells along the x axis
func (c *GameConfig) GridColumns() int {
	return c.Width / c.CellSize
}

// GridRows returns the number of cells along the y axis
func (c *GameConfig) GridRows() int {
	return c.Height / c.CellSize
}

// TickRecord represents a single tick in the game history
type TickRecord struct {
	TickNumber int      `json:"tick_number"`
	Heading    Heading  `json:"heading"`
	Head       Position `json:"head"`
	Ate        bool     `json:"ate"`
	Redirected bool     `json:"redirected"`
	Alive      bool     `json:"alive"`
	Timestamp  int64    `json:"timestamp"`
}

// GameState represents the complete simulation state.
//
// Body is ordered tail first, head last. Score is never stored; it is
// always derived from the body length (see Score).
type GameState struct {
	Body          []Position   `json:"body"`
	Heading       Heading      `json:"heading"`
	Food          *Position    `json:"food,omitempty"`
	InitialLength int          `json:"initial_length"`
	GameOver      bool         `json:"game_over"`
	Cause         string       `json:"cause,omitempty"` // self_collision, gate or wall
	Ticks         int          `json:"ticks"`
	Message       string       `json:"message"`
	ConfigName    string       `json:"config_name"`
	TickHistory   []TickRecord `json:"tick_history"`
}

// Head returns the head cell (the last body segment)
func (gs *GameState) Head() Position {
	return gs.Body[len(gs.Body)-1]
}

// Score returns the number of food items consumed so far, derived from
// the body length rather than tracked as separate mutable state.
func (gs *GameState) Score() int {
	return len(gs.Body) - gs.InitialLength
}

// Occupies reports whether any body segment sits on the given cell
func (gs *GameState) Occupies(p Position) bool {
	for _, seg := range gs.Body {
		if seg == p {
			return true
		}
	}
	return false
}

// TickResult contains everything the driving layer needs after one tick
type TickResult struct {
	TickNumber int        `json:"tick_number"`
	Body       []Position `json:"body"`
	Food       *Position  `json:"food,omitempty"`
	Score      int        `json:"score"`
	Alive      bool       `json:"alive"`
	Ate        bool       `json:"ate"`
	Redirected bool       `json:"redirected"`
	Heading    Heading    `json:"heading"`
	Cause      string     `json:"cause,omitempty"`
	Message    string     `json:"message"`
}
