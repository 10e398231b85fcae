package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gridgames/snake-game/game/engine"
)

// fakeSessionManager is an in-memory SessionManager for tests.
type fakeSessionManager struct {
	sessions map[string]*Session
	counter  int
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: make(map[string]*Session)}
}

func (f *fakeSessionManager) Create(id string, config *engine.GameConfig) (*Session, error) {
	if id == "" {
		f.counter++
		id = fmt.Sprintf("s%03d", f.counter)
	}
	key := strings.ToLower(id)
	if _, exists := f.sessions[key]; exists {
		return nil, errors.New("session already exists")
	}
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	f.sessions[key] = sess
	return sess, nil
}

func (f *fakeSessionManager) Get(id string) (*Session, error) {
	sess, exists := f.sessions[strings.ToLower(id)]
	if !exists {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func (f *fakeSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*Session, error) {
	if sess, err := f.Get(id); err == nil {
		return sess, nil
	}
	return f.Create(id, config)
}

func (f *fakeSessionManager) List() []*Session {
	result := make([]*Session, 0, len(f.sessions))
	for _, sess := range f.sessions {
		result = append(result, sess)
	}
	return result
}

func (f *fakeSessionManager) Delete(id string) error {
	key := strings.ToLower(id)
	if _, exists := f.sessions[key]; !exists {
		return errors.New("session not found")
	}
	delete(f.sessions, key)
	return nil
}

func (f *fakeSessionManager) UpdateLastAccessed(id string) error {
	sess, err := f.Get(id)
	if err != nil {
		return err
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// fakeConfigManager serves configs from a map.
type fakeConfigManager struct {
	configs map[string]*engine.GameConfig
}

func (f *fakeConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := f.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (f *fakeConfigManager) ListConfigs() ([]*ConfigInfo, error) {
	var infos []*ConfigInfo
	for id, config := range f.configs {
		infos = append(infos, &ConfigInfo{
			Filename:     id + ".json",
			ConfigID:     id,
			Name:         config.Name,
			Description:  config.Description,
			GridColumns:  config.GridColumns(),
			GridRows:     config.GridRows(),
			CellSize:     config.CellSize,
			BoundaryMode: string(config.BoundaryMode),
		})
	}
	return infos, nil
}

func (f *fakeConfigManager) GetDefault() *engine.GameConfig {
	return f.configs["classic"]
}

func (f *fakeConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	f.configs[name] = config
	return nil
}

// fakeScoreboard collects entries in memory.
type fakeScoreboard struct {
	mu      sync.Mutex
	entries []ScoreEntry
	failing bool
}

func (f *fakeScoreboard) Record(ctx context.Context, entry ScoreEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("scoreboard unavailable")
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeScoreboard) Top(ctx context.Context, limit int) ([]ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := make([]ScoreEntry, len(f.entries))
	copy(sorted, f.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func serviceTestConfig(name string, mode engine.BoundaryMode) *engine.GameConfig {
	config := engine.DefaultGameConfig()
	config.Name = name
	config.Width = 100
	config.Height = 100
	config.StartX = 0
	config.StartY = 40
	config.GateRow = 40
	config.GateCol = 0
	config.BoundaryMode = mode
	config.FoodSeed = 1
	return config
}

func newTestService() (GameService, *fakeSessionManager, *fakeScoreboard) {
	sessions := newFakeSessionManager()
	configs := &fakeConfigManager{configs: map[string]*engine.GameConfig{
		"classic": serviceTestConfig("classic", engine.BoundaryRail),
		"wrap":    serviceTestConfig("toroidal", engine.BoundaryWrap),
		"wall":    serviceTestConfig("walled", engine.BoundaryWall),
	}}
	scores := &fakeScoreboard{}
	return NewGameService(sessions, configs, scores), sessions, scores
}

func TestCreateSession(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.ID == "" {
		t.Error("Expected a generated session ID")
	}
	if info.ConfigName != "classic" {
		t.Errorf("Expected config_id classic, got %q", info.ConfigName)
	}
	if info.GameState.GameOver {
		t.Error("Expected a running session")
	}
}

func TestCreateSession_NamedConfig(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "wrap")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.GameConfig.BoundaryMode != engine.BoundaryWrap {
		t.Errorf("Expected wrap mode, got %q", info.GameConfig.BoundaryMode)
	}
}

func TestCreateSession_UnknownConfig(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateSession(context.Background(), "bogus")
	if err == nil {
		t.Fatal("Expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "Available configs") {
		t.Errorf("Expected the error to list available configs, got %v", err)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.GetSession(context.Background(), "nope"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestSetHeading(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	// Perpendicular change is accepted.
	result, err := svc.SetHeading(ctx, info.ID, engine.Down)
	if err != nil {
		t.Fatalf("SetHeading failed: %v", err)
	}
	if !result.Accepted {
		t.Errorf("Expected heading change to be accepted: %s", result.Message)
	}
	if result.Heading != engine.Down {
		t.Errorf("Expected committed heading down, got %q", result.Heading)
	}

	// Reversal is rejected, committed heading unchanged.
	result, _ = svc.SetHeading(ctx, info.ID, engine.Up)
	if result.Accepted {
		t.Error("Expected reversal to be rejected")
	}
	if result.Heading != engine.Down {
		t.Errorf("Expected committed heading to stay down, got %q", result.Heading)
	}
	if !strings.Contains(result.Message, "reverse") {
		t.Errorf("Expected reversal message, got %q", result.Message)
	}

	// Invalid heading gets its own message.
	result, _ = svc.SetHeading(ctx, info.ID, "diagonal")
	if result.Accepted {
		t.Error("Expected invalid heading to be rejected")
	}
	if !strings.Contains(result.Message, "invalid heading") {
		t.Errorf("Expected invalid-heading message, got %q", result.Message)
	}
}

func TestTick(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wrap")

	outcome, err := svc.Tick(ctx, info.ID, false)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !outcome.Result.Alive {
		t.Error("Expected the snake to stay alive")
	}
	if outcome.Result.TickNumber != 1 {
		t.Errorf("Expected tick number 1, got %d", outcome.Result.TickNumber)
	}
	if len(outcome.Events) == 0 || outcome.Events[0].Type != "tick" {
		t.Errorf("Expected a tick event, got %+v", outcome.Events)
	}
	if outcome.FoodHint == "" {
		t.Error("Expected a food hint after the first tick")
	}
}

func TestTick_WithReset(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wrap")

	svc.Tick(ctx, info.ID, false)
	svc.Tick(ctx, info.ID, false)

	outcome, err := svc.Tick(ctx, info.ID, true)
	if err != nil {
		t.Fatalf("Tick with reset failed: %v", err)
	}
	if outcome.Result.TickNumber != 1 {
		t.Errorf("Expected tick counter restart, got %d", outcome.Result.TickNumber)
	}
	if outcome.Events[0].Type != "reset" {
		t.Errorf("Expected reset event first, got %q", outcome.Events[0].Type)
	}
}

func TestTick_RecordsFinishedSession(t *testing.T) {
	svc, _, scores := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wall")

	// Head starts at (40,40) heading right on a 5x5 board: the fourth
	// tick hits the east wall.
	var outcome *TickOutcome
	for i := 0; i < 10; i++ {
		outcome, _ = svc.Tick(ctx, info.ID, false)
		if !outcome.Result.Alive {
			break
		}
	}

	if outcome.Result.Alive {
		t.Fatal("Expected the session to end at the wall")
	}
	if outcome.Result.Cause != "wall" {
		t.Errorf("Expected cause wall, got %q", outcome.Result.Cause)
	}

	if len(scores.entries) != 1 {
		t.Fatalf("Expected 1 scoreboard entry, got %d", len(scores.entries))
	}
	entry := scores.entries[0]
	if entry.SessionID != info.ID || entry.Cause != "wall" {
		t.Errorf("Unexpected scoreboard entry %+v", entry)
	}

	// Ticking a finished session records nothing further.
	svc.Tick(ctx, info.ID, false)
	if len(scores.entries) != 1 {
		t.Errorf("Expected no duplicate entries, got %d", len(scores.entries))
	}
}

func TestBulkTick(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wrap")

	result, err := svc.BulkTick(ctx, info.ID, []engine.Heading{engine.Down, "", engine.Right}, false)
	if err != nil {
		t.Fatalf("BulkTick failed: %v", err)
	}
	if result.TicksExecuted != 3 {
		t.Errorf("Expected 3 ticks, got %d", result.TicksExecuted)
	}
	if result.RequestedTicks != 3 {
		t.Errorf("Expected 3 requested ticks, got %d", result.RequestedTicks)
	}
	if result.GameOver {
		t.Error("Expected a live session")
	}
	if result.StartHead == result.EndHead {
		t.Error("Expected the head to move")
	}
}

func TestBulkTick_Truncation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wrap")

	headings := make([]engine.Heading, engine.MaxBulkTicks+50)
	result, err := svc.BulkTick(ctx, info.ID, headings, false)
	if err != nil {
		t.Fatalf("BulkTick failed: %v", err)
	}
	if !result.Truncated {
		t.Error("Expected the request to be truncated")
	}
	if result.Limit != engine.MaxBulkTicks {
		t.Errorf("Expected limit %d, got %d", engine.MaxBulkTicks, result.Limit)
	}
	if result.TicksExecuted > engine.MaxBulkTicks {
		t.Errorf("Expected at most %d ticks, got %d", engine.MaxBulkTicks, result.TicksExecuted)
	}
}

func TestBulkTick_StopsAtTerminalState(t *testing.T) {
	svc, _, scores := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wall")

	result, err := svc.BulkTick(ctx, info.ID, make([]engine.Heading, 10), false)
	if err != nil {
		t.Fatalf("BulkTick failed: %v", err)
	}
	if !result.GameOver {
		t.Fatal("Expected the session to end")
	}
	if result.StopReasonCode != "wall" {
		t.Errorf("Expected stop code wall, got %q", result.StopReasonCode)
	}
	if result.TicksExecuted >= 10 {
		t.Errorf("Expected early stop, got %d ticks", result.TicksExecuted)
	}
	if result.StoppedOnTick != result.TicksExecuted {
		t.Errorf("Expected stop on tick %d, got %d", result.TicksExecuted, result.StoppedOnTick)
	}
	if len(scores.entries) != 1 {
		t.Errorf("Expected the finish to be recorded, got %d entries", len(scores.entries))
	}
}

func TestGetTickHistory_Pagination(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "wrap")

	svc.BulkTick(ctx, info.ID, make([]engine.Heading, 25), false)

	// Defaults: page 1, limit 20, most recent first.
	resp, err := svc.GetTickHistory(ctx, info.ID, HistoryOptions{})
	if err != nil {
		t.Fatalf("GetTickHistory failed: %v", err)
	}
	if resp.TotalTicks != 25 {
		t.Errorf("Expected 25 total ticks, got %d", resp.TotalTicks)
	}
	if len(resp.Ticks) != 20 {
		t.Errorf("Expected 20 ticks on page 1, got %d", len(resp.Ticks))
	}
	if resp.Ticks[0].TickNumber != 25 {
		t.Errorf("Expected newest tick first, got %d", resp.Ticks[0].TickNumber)
	}
	if !resp.HasNext || resp.HasPrevious {
		t.Error("Expected a next page and no previous page")
	}

	// Ascending order, second page.
	resp, _ = svc.GetTickHistory(ctx, info.ID, HistoryOptions{Page: 2, Limit: 10, Order: "asc"})
	if len(resp.Ticks) != 10 {
		t.Fatalf("Expected 10 ticks on page 2, got %d", len(resp.Ticks))
	}
	if resp.Ticks[0].TickNumber != 11 {
		t.Errorf("Expected tick 11 first, got %d", resp.Ticks[0].TickNumber)
	}
}

func TestTopScores(t *testing.T) {
	svc, _, scores := newTestService()
	ctx := context.Background()

	scores.entries = []ScoreEntry{
		{SessionID: "a", Score: 3},
		{SessionID: "b", Score: 9},
		{SessionID: "c", Score: 5},
	}

	top, err := svc.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(top))
	}
	if top[0].SessionID != "b" || top[1].SessionID != "c" {
		t.Errorf("Expected best-first ordering, got %+v", top)
	}
}

func TestTopScores_NoScoreboard(t *testing.T) {
	sessions := newFakeSessionManager()
	configs := &fakeConfigManager{configs: map[string]*engine.GameConfig{
		"classic": serviceTestConfig("classic", engine.BoundaryRail),
	}}
	svc := NewGameService(sessions, configs, nil)

	top, err := svc.TopScores(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("Expected empty scores without a scoreboard, got %d", len(top))
	}
}

func TestDeleteSession(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if len(sessions.List()) != 0 {
		t.Error("Expected no sessions after delete")
	}
}
