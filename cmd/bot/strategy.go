package main

import (
	"github.com/gridgames/snake-game/game/engine"
)

// Planner routes the snake toward the food with a breadth-first search over
// the cell grid. The body is treated as static for the length of the plan,
// which over-blocks long routes but never walks into a segment that will
// still be there.
type Planner struct {
	config *engine.GameConfig
}

func NewPlanner(config *engine.GameConfig) *Planner {
	return &Planner{config: config}
}

type cell struct {
	X, Y int
}

type step struct {
	heading engine.Heading
	dx, dy  int
}

var steps = []step{
	{engine.Up, 0, -1},
	{engine.Down, 0, 1},
	{engine.Left, -1, 0},
	{engine.Right, 1, 0},
}

// Route returns the heading sequence from the current head to the food. When
// no path exists it returns a single safe move to buy time, and nil when the
// snake is boxed in.
func (p *Planner) Route(state *engine.GameState) []string {
	cs := p.config.CellSize

	blocked := make(map[cell]bool, len(state.Body))
	for _, seg := range state.Body {
		blocked[cell{seg.X / cs, seg.Y / cs}] = true
	}

	head := state.Head()
	start := cell{head.X / cs, head.Y / cs}
	reverse := state.Heading.Opposite()

	if state.Food == nil {
		return p.survivalMove(start, reverse, blocked)
	}
	target := cell{state.Food.X / cs, state.Food.Y / cs}

	parent := make(map[cell]cell)
	via := make(map[cell]engine.Heading)
	visited := map[cell]bool{start: true}
	queue := []cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == target {
			return unwind(start, target, parent, via)
		}

		for _, s := range steps {
			if cur == start && s.heading == reverse {
				continue
			}
			next, ok := p.neighbor(cur, s)
			if !ok || visited[next] || blocked[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			via[next] = s.heading
			queue = append(queue, next)
		}
	}

	return p.survivalMove(start, reverse, blocked)
}

// neighbor applies a step to a cell under the board's boundary policy.
// Wrapping boards fold the edges; rail and wall boards treat off-board cells
// as blocked (the plan never leans on the rail redirect).
func (p *Planner) neighbor(c cell, s step) (cell, bool) {
	cols := p.config.GridColumns()
	rows := p.config.GridRows()

	next := cell{c.X + s.dx, c.Y + s.dy}
	if p.config.BoundaryMode == engine.BoundaryWrap {
		next.X = (next.X + cols) % cols
		next.Y = (next.Y + rows) % rows
		return next, true
	}

	if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
		return cell{}, false
	}
	return next, true
}

// unwind walks the parent chain from target back to start and returns the
// headings in travel order.
func unwind(start, target cell, parent map[cell]cell, via map[cell]engine.Heading) []string {
	var reversed []engine.Heading
	for cur := target; cur != start; cur = parent[cur] {
		reversed = append(reversed, via[cur])
	}

	headings := make([]string, len(reversed))
	for i := range reversed {
		headings[i] = string(reversed[len(reversed)-1-i])
	}
	return headings
}

// survivalMove picks any single legal move, preferring the current heading.
func (p *Planner) survivalMove(start cell, reverse engine.Heading, blocked map[cell]bool) []string {
	current := reverse.Opposite()

	ordered := make([]step, 0, len(steps))
	for _, s := range steps {
		if s.heading == current {
			ordered = append([]step{s}, ordered...)
		} else {
			ordered = append(ordered, s)
		}
	}

	for _, s := range ordered {
		if s.heading == reverse {
			continue
		}
		next, ok := p.neighbor(start, s)
		if !ok || blocked[next] {
			continue
		}
		return []string{string(s.heading)}
	}
	return nil
}
