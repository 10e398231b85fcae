package service

import (
	"time"

	"github.com/gridgames/snake-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// HeadingResult reports whether a heading request was accepted
type HeadingResult struct {
	Accepted bool           `json:"accepted"`
	Heading  engine.Heading `json:"heading"` // the committed heading after the request
	Message  string         `json:"message,omitempty"`
}

// TickOutcome contains the result of a single tick
type TickOutcome struct {
	Result    *engine.TickResult `json:"result"`
	GameState *engine.GameState  `json:"game_state"`
	Events    []GameEvent        `json:"events,omitempty"`
	FoodHint  string             `json:"food_hint,omitempty"`
}

// BulkTickResult contains the result of multiple ticks
type BulkTickResult struct {
	// Summary
	RequestedTicks int                  `json:"requested_ticks"`
	TicksExecuted  int                  `json:"ticks_executed"`
	Results        []*engine.TickResult `json:"results"`
	GameState      *engine.GameState    `json:"game_state"`
	Events         []GameEvent          `json:"events"`

	// Stop diagnostics
	StoppedReason  string `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string `json:"stop_reason_code,omitempty"` // Machine-friendly code: self_collision|gate|wall|game_over
	StoppedOnTick  int    `json:"stopped_on_tick,omitempty"`  // 1-based index of the tick that caused the stop
	Truncated      bool   `json:"truncated,omitempty"`
	Limit          int    `json:"limit,omitempty"`

	// Start/end snapshot of the call
	StartHead  engine.Position `json:"start_head"`
	EndHead    engine.Position `json:"end_head"`
	ScoreDelta int             `json:"score_delta"`

	// Final status aids
	GameOver bool   `json:"game_over"`
	Message  string `json:"message,omitempty"`
	FoodHint string `json:"food_hint,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "tick", "food_eaten", "redirected", "game_over", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures tick history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated tick history
type HistoryResponse struct {
	Ticks       []engine.TickRecord `json:"ticks"`
	TotalTicks  int                 `json:"total_ticks"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	GridColumns  int    `json:"grid_columns"`
	GridRows     int    `json:"grid_rows"`
	CellSize     int    `json:"cell_size"`
	BoundaryMode string `json:"boundary_mode"`
}

// ScoreEntry is the final result of a finished session
type ScoreEntry struct {
	SessionID  string    `json:"session_id"`
	ConfigName string    `json:"config_name"`
	Score      int       `json:"score"`
	Length     int       `json:"length"`
	Ticks      int       `json:"ticks"`
	Cause      string    `json:"cause"`
	FinishedAt time.Time `json:"finished_at"`
}
