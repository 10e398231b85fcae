// Command play runs the snake game in the terminal. It embeds the engine
// directly (no server required) and drives it at a fixed tick rate while the
// arrow keys steer the snake.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/gridgames/snake-game/game/engine"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "Play the grid snake game in your terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a board configuration JSON file",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: 150 * time.Millisecond,
				Usage: "Time between ticks",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Food spawn seed (0 = random)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	config := engine.DefaultGameConfig()
	if path := cmd.String("config"); path != "" {
		loaded, err := engine.LoadGameConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config = loaded
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		config.FoodSeed = seed
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	m := model{
		eng:      eng,
		interval: cmd.Duration("interval"),
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type model struct {
	eng      *engine.SnakeEngine
	interval time.Duration
	paused   bool
	rejected string
}

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k", "w":
			m.steer(engine.Up)
		case "down", "j", "s":
			m.steer(engine.Down)
		case "left", "h", "a":
			m.steer(engine.Left)
		case "right", "l", "d":
			m.steer(engine.Right)
		case "r":
			m.eng.Reset()
			m.rejected = ""
			m.paused = false
		case " ", "p":
			m.paused = !m.paused
		}
		return m, nil

	case tickMsg:
		if !m.paused && !m.eng.IsGameOver() {
			m.eng.Tick()
			m.rejected = ""
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

// steer forwards a heading request; a rejection (reversal) is surfaced in the
// status line instead of silently ignored.
func (m *model) steer(h engine.Heading) {
	if !m.eng.SetHeading(h) {
		m.rejected = fmt.Sprintf("can't reverse into %s", h)
	}
}

func (m model) View() string {
	state := m.eng.GetState()
	config := m.eng.GetConfig()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Snake: %s", config.Name)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Score %d · Length %d · Ticks %d · %s",
		state.Score(), len(state.Body), state.Ticks, state.Heading)))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(renderBoard(state, config)))
	b.WriteString("\n")

	switch {
	case state.GameOver:
		b.WriteString(overStyle.Render(fmt.Sprintf("GAME OVER (%s) - press r to restart", state.Cause)))
	case m.paused:
		b.WriteString(statusStyle.Render("paused - space to resume"))
	case m.rejected != "":
		b.WriteString(statusStyle.Render(m.rejected))
	default:
		b.WriteString(statusStyle.Render("arrows/wasd steer · space pauses · r restarts · q quits"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderBoard draws the grid one styled rune per cell.
func renderBoard(state *engine.GameState, config *engine.GameConfig) string {
	cols := config.GridColumns()
	rows := config.GridRows()

	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	plot := func(p engine.Position, cell string) {
		x := p.X / config.CellSize
		y := p.Y / config.CellSize
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = cell
		}
	}

	for _, seg := range state.Body {
		plot(seg, bodyStyle.Render("o"))
	}
	plot(state.Head(), headStyle.Render("@"))
	if state.Food != nil {
		plot(*state.Food, foodStyle.Render("●"))
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
