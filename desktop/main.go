// Desktop client for the Grid Snake Game. It creates (or attaches to) a
// session on the local server, renders the board with ebiten, and steers the
// snake with the arrow keys. A WebSocket subscription keeps the view in sync
// with moves made by other clients on the same session.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	headerHeight = 40
	baseURL      = "http://localhost:8080"
	tickEvery    = 9 // frames between ticks at 60 TPS, ~150ms
)

var (
	colorBackground = color.RGBA{24, 24, 32, 255}
	colorGridLine   = color.RGBA{40, 40, 52, 255}
	colorBody       = color.RGBA{60, 170, 90, 255}
	colorHead       = color.RGBA{110, 230, 140, 255}
	colorFood       = color.RGBA{230, 80, 80, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 180}
)

// Wire types mirror the server's JSON payloads.

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GameState struct {
	Body          []Position `json:"body"`
	Heading       string     `json:"heading"`
	Food          *Position  `json:"food,omitempty"`
	InitialLength int        `json:"initial_length"`
	GameOver      bool       `json:"game_over"`
	Cause         string     `json:"cause,omitempty"`
	Ticks         int        `json:"ticks"`
	Message       string     `json:"message"`
}

func (gs *GameState) Head() Position {
	return gs.Body[len(gs.Body)-1]
}

func (gs *GameState) Score() int {
	return len(gs.Body) - gs.InitialLength
}

type GameConfig struct {
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	CellSize     int    `json:"cell_size"`
	BoundaryMode string `json:"boundary_mode"`
	GateRow      int    `json:"gate_row"`
	GateCol      int    `json:"gate_col"`
}

type SessionResponse struct {
	ID         string      `json:"id"`
	ConfigName string      `json:"config_name"`
	GameState  *GameState  `json:"game_state"`
	GameConfig *GameConfig `json:"game_config"`
}

type WSMessage struct {
	SessionID string     `json:"session_id"`
	GameState *GameState `json:"game_state,omitempty"`
	Event     string     `json:"event,omitempty"`
}

// Game holds the client state and implements ebiten.Game.
type Game struct {
	sessionID string
	config    *GameConfig

	mu    sync.Mutex
	state *GameState

	client *http.Client
	frame  int
	paused bool
	errMsg string
}

func NewGame(sessionID string) (*Game, error) {
	g := &Game{
		client: &http.Client{Timeout: 5 * time.Second},
	}

	var session SessionResponse
	var err error
	if sessionID != "" {
		err = g.getJSON(fmt.Sprintf("%s/api/sessions/%s", baseURL, sessionID), &session)
	} else {
		err = g.postJSON(baseURL+"/api/sessions", nil, &session)
	}
	if err != nil {
		return nil, err
	}

	g.sessionID = session.ID
	g.config = session.GameConfig
	g.state = session.GameState

	if err := g.connectWebSocket(); err != nil {
		// Not fatal; the tick responses still refresh the view.
		log.Printf("WebSocket unavailable: %v", err)
	}

	return g, nil
}

func (g *Game) getJSON(rawURL string, out interface{}) error {
	resp, err := g.client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %s - %s", rawURL, resp.Status, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Game) postJSON(rawURL string, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	resp, err := g.client.Post(rawURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %s - %s", rawURL, resp.Status, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// connectWebSocket subscribes to the session's broadcast stream and feeds
// state updates into the render loop.
func (g *Game) connectWebSocket() error {
	wsURL := strings.Replace(baseURL, "http", "ws", 1)
	u, err := url.Parse(wsURL + "/ws")
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("session", g.sessionID)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}

	go func() {
		defer conn.Close()
		for {
			var msg WSMessage
			if err := conn.ReadJSON(&msg); err != nil {
				log.Printf("WebSocket closed: %v", err)
				return
			}
			if msg.GameState != nil {
				g.mu.Lock()
				g.state = msg.GameState
				g.mu.Unlock()
			}
		}
	}()

	return nil
}

func (g *Game) setHeading(heading string) {
	go func() {
		err := g.postJSON(
			fmt.Sprintf("%s/api/sessions/%s/heading", baseURL, g.sessionID),
			map[string]string{"heading": heading}, nil)
		if err != nil {
			log.Printf("Heading request failed: %v", err)
		}
	}()
}

func (g *Game) tick() {
	var outcome struct {
		GameState *GameState `json:"game_state"`
	}
	err := g.postJSON(
		fmt.Sprintf("%s/api/sessions/%s/tick", baseURL, g.sessionID), map[string]bool{}, &outcome)
	if err != nil {
		g.errMsg = err.Error()
		return
	}
	if outcome.GameState != nil {
		g.mu.Lock()
		g.state = outcome.GameState
		g.mu.Unlock()
	}
}

func (g *Game) reset() {
	var response struct {
		State *GameState `json:"state"`
	}
	err := g.postJSON(
		fmt.Sprintf("%s/api/sessions/%s/reset", baseURL, g.sessionID), nil, &response)
	if err != nil {
		g.errMsg = err.Error()
		return
	}
	if response.State != nil {
		g.mu.Lock()
		g.state = response.State
		g.mu.Unlock()
	}
	g.paused = false
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.setHeading("up")
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.setHeading("down")
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.setHeading("left")
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.setHeading("right")
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	g.mu.Lock()
	over := g.state != nil && g.state.GameOver
	g.mu.Unlock()

	g.frame++
	if !g.paused && !over && g.frame%tickEvery == 0 {
		g.tick()
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	if state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	cell := float64(g.config.CellSize)

	// Grid lines
	for x := 0; x <= g.config.Width; x += g.config.CellSize {
		ebitenutil.DrawRect(screen, float64(x), headerHeight, 1, float64(g.config.Height), colorGridLine)
	}
	for y := 0; y <= g.config.Height; y += g.config.CellSize {
		ebitenutil.DrawRect(screen, 0, headerHeight+float64(y), float64(g.config.Width), 1, colorGridLine)
	}

	// Body then head on top
	for _, seg := range state.Body {
		ebitenutil.DrawRect(screen,
			float64(seg.X)+1, headerHeight+float64(seg.Y)+1, cell-2, cell-2, colorBody)
	}
	head := state.Head()
	ebitenutil.DrawRect(screen,
		float64(head.X)+1, headerHeight+float64(head.Y)+1, cell-2, cell-2, colorHead)

	if state.Food != nil {
		ebitenutil.DrawRect(screen,
			float64(state.Food.X)+3, headerHeight+float64(state.Food.Y)+3, cell-6, cell-6, colorFood)
	}

	// Header
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Session %s (%s) | Score: %d | Length: %d | Ticks: %d | Heading: %s",
			g.sessionID, g.config.Name, state.Score(), len(state.Body), state.Ticks, state.Heading), 10, 5)
	ebitenutil.DebugPrintAt(screen,
		"Arrows/WASD: Steer | SPACE: Pause | R: Reset | ESC: Quit", 10, 20)

	if state.GameOver {
		ebitenutil.DrawRect(screen, 0, headerHeight, float64(g.config.Width), float64(g.config.Height), colorOverlay)
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("GAME OVER (%s) - Score: %d - Press R to restart", state.Cause, state.Score()),
			g.config.Width/2-150, headerHeight+g.config.Height/2)
	} else if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", g.config.Width/2-20, headerHeight+g.config.Height/2)
	}

	if g.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, "ERROR: "+g.errMsg, 10, headerHeight+g.config.Height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, headerHeight + g.config.Height
}

func main() {
	sessionID := ""
	if len(os.Args) > 1 {
		sessionID = os.Args[1]
	}

	game, err := NewGame(sessionID)
	if err != nil {
		log.Fatalf("Failed to start: %v (is the server running at %s?)", err, baseURL)
	}

	ebiten.SetWindowSize(game.config.Width, headerHeight+game.config.Height)
	ebiten.SetWindowTitle("Grid Snake Game - " + game.sessionID)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
