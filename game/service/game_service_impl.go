package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gridgames/snake-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   Scoreboard
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. The scoreboard is
// optional; with a nil scoreboard finished sessions are simply not recorded.
func NewGameService(sessions SessionManager, configs ConfigManager, scores Scoreboard) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scores,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// SetHeading requests a heading change to take effect on the next tick
func (s *gameServiceImpl) SetHeading(ctx context.Context, sessionID string, heading engine.Heading) (*HeadingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &HeadingResult{
		Accepted: sess.Engine.SetHeading(heading),
		Heading:  sess.Engine.GetHeading(),
	}

	if !result.Accepted {
		switch {
		case sess.Engine.IsGameOver():
			result.Message = "session is over; reset to play again"
		case !heading.Valid():
			result.Message = fmt.Sprintf("invalid heading %q (use up, down, left, right)", heading)
		default:
			result.Message = fmt.Sprintf("cannot reverse from %s to %s", result.Heading, heading)
		}
	}

	return result, nil
}

// Tick advances a session by a single step
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string, reset bool) (*TickOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	wasOver := sess.Engine.IsGameOver()
	result := sess.Engine.Tick()
	events = append(events, s.extractTickEvents(result)...)

	if !wasOver && sess.Engine.IsGameOver() {
		s.recordFinish(ctx, sess)
	}

	state := sess.Engine.GetState()
	return &TickOutcome{
		Result:    result,
		GameState: state,
		Events:    events,
		FoodHint:  engine.DescribeFood(state, sess.Config),
	}, nil
}

// BulkTick advances a session once per heading entry. An empty entry keeps
// the committed heading. Ticking stops at the terminal state.
func (s *gameServiceImpl) BulkTick(ctx context.Context, sessionID string, headings []engine.Heading, reset bool) (*BulkTickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if reset {
		sess.Engine.Reset()
	}

	startState := sess.Engine.GetState()
	startScore := startState.Score()

	result := &BulkTickResult{
		RequestedTicks: len(headings),
		Results:        make([]*engine.TickResult, 0, len(headings)),
		Events:         make([]GameEvent, 0),
		StartHead:      sess.Engine.GetHead(),
	}

	if reset {
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	// Limit ticks to prevent abuse
	if len(headings) > engine.MaxBulkTicks {
		result.Truncated = true
		result.Limit = engine.MaxBulkTicks
		headings = headings[:engine.MaxBulkTicks]
	}

	wasOver := sess.Engine.IsGameOver()

	for i, heading := range headings {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "session is over"
			result.StopReasonCode = "game_over"
			result.StoppedOnTick = result.TicksExecuted + 1
			break
		}

		if heading != "" {
			sess.Engine.SetHeading(heading)
		}

		tick := sess.Engine.Tick()
		result.TicksExecuted++
		result.Results = append(result.Results, tick)
		result.Events = append(result.Events, s.extractTickEvents(tick)...)

		if !tick.Alive {
			result.StoppedReason = fmt.Sprintf("tick %d ended the session: %s", i+1, tick.Cause)
			result.StopReasonCode = tick.Cause
			result.StoppedOnTick = i + 1
			break
		}
	}

	if !wasOver && sess.Engine.IsGameOver() {
		s.recordFinish(ctx, sess)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndHead = endState.Head()
	result.ScoreDelta = endState.Score() - startScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message
	result.FoodHint = engine.DescribeFood(endState, sess.Config)

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Reset(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetTickHistory returns paginated tick history
func (s *gameServiceImpl) GetTickHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetTickHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var ticks []engine.TickRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			ticks = append(ticks, history[i])
		}
	} else {
		if start < total {
			ticks = history[start:end]
		}
	}

	if ticks == nil {
		ticks = []engine.TickRecord{}
	}

	return &HistoryResponse{
		Ticks:       ticks,
		TotalTicks:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// TopScores returns the best finished sessions, highest score first
func (s *gameServiceImpl) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if s.scores == nil {
		return []ScoreEntry{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.scores.Top(ctx, limit)
}

// recordFinish writes the final result of a session that just ended. Failures
// are logged, not surfaced: the tick result matters more than the scoreboard.
func (s *gameServiceImpl) recordFinish(ctx context.Context, sess *Session) {
	if s.scores == nil {
		return
	}

	state := sess.Engine.GetState()
	entry := ScoreEntry{
		SessionID:  sess.ID,
		ConfigName: sess.Config.Name,
		Score:      state.Score(),
		Length:     len(state.Body),
		Ticks:      state.Ticks,
		Cause:      state.Cause,
		FinishedAt: time.Now(),
	}

	if err := s.scores.Record(ctx, entry); err != nil {
		log.Printf("[SCORE] failed to record session %s: %v", sess.ID, err)
	}
}

// extractTickEvents generates events from a tick result
func (s *gameServiceImpl) extractTickEvents(tick *engine.TickResult) []GameEvent {
	events := []GameEvent{}
	head := engine.Position{}
	if len(tick.Body) > 0 {
		head = tick.Body[len(tick.Body)-1]
	}

	events = append(events, GameEvent{
		Type:      "tick",
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", tick.Heading, head.X, head.Y),
		Timestamp: time.Now(),
		Position:  head,
	})

	if tick.Redirected {
		events = append(events, GameEvent{
			Type:      "redirected",
			Message:   fmt.Sprintf("Boundary rail redirected heading to %s", tick.Heading),
			Timestamp: time.Now(),
			Position:  head,
		})
	}

	if tick.Ate {
		events = append(events, GameEvent{
			Type:      "food_eaten",
			Message:   fmt.Sprintf("Food eaten! Score: %d", tick.Score),
			Timestamp: time.Now(),
			Position:  head,
		})
	}

	if !tick.Alive {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   tick.Message,
			Timestamp: time.Now(),
		})
	}

	return events
}
