package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// SetHeading commits a requested heading for the next tick. It returns
// false without changing anything when the request is invalid or the exact
// opposite of the committed heading (a reversal would walk the head
// straight into the neck). Repeated calls between ticks are
// last-write-wins.
func (gs *GameState) SetHeading(requested Heading) bool {
	if gs.GameOver {
		return false
	}
	if !requested.Valid() {
		return false
	}
	if requested == gs.Heading.Opposite() {
		return false
	}
	gs.Heading = requested
	return true
}

// Advance computes the next head cell and whether entering it collides
// with the body. The collision check excludes the tail-most segment: that
// cell is vacated this tick, so a snake may legally chase its own tail.
//
// Advance is a pure function over its arguments to keep the tick algorithm
// testable in isolation.
func Advance(body []Position, heading Heading, cellSize int) (Position, bool) {
	newHead := body[len(body)-1].Step(heading, cellSize)
	for _, seg := range body[1:] {
		if seg == newHead {
			return newHead, true
		}
	}
	return newHead, false
}

// applyBoundary resolves a head cell that may lie outside the grid.
// It returns the adjusted head and whether the contact is terminal.
// In rail mode it may also redirect gs.Heading; the redirected flag
// reports that.
func (gs *GameState) applyBoundary(newHead Position, config *GameConfig) (Position, bool, bool) {
	outX := newHead.X < 0 || newHead.X >= config.Width
	outY := newHead.Y < 0 || newHead.Y >= config.Height
	if !outX && !outY {
		return newHead, false, false
	}

	switch config.BoundaryMode {
	case BoundaryWall:
		return newHead, true, false

	case BoundaryWrap:
		x, y := newHead.X, newHead.Y
		if x < 0 {
			x += config.Width
		} else if x >= config.Width {
			x -= config.Width
		}
		if y < 0 {
			y += config.Height
		} else if y >= config.Height {
			y -= config.Height
		}
		return Position{X: x, Y: y}, false, false

	default: // BoundaryRail
		head := gs.Head()
		if outX {
			if head.Y == config.GateRow {
				return newHead, true, false
			}
			// Turn along the wall, toward the half with more room.
			if head.Y < config.Height/2 {
				gs.Heading = Down
			} else {
				gs.Heading = Up
			}
		} else {
			if head.X == config.GateCol {
				return newHead, true, false
			}
			if head.X < config.Width/2 {
				gs.Heading = Right
			} else {
				gs.Heading = Left
			}
		}
		return head.Step(gs.Heading, config.CellSize), false, true
	}
}

// AdvanceTick advances the simulation by exactly one tick using the
// committed heading. The rng is used only for food placement; callers that
// need determinism seed it themselves.
//
// Tick order: boundary policy first, then the self-collision test against
// the post-trim body, then food consumption which decides whether the tail
// is trimmed this tick.
func (gs *GameState) AdvanceTick(config *GameConfig, rng *rand.Rand) *TickResult {
	if gs.GameOver {
		return gs.snapshot(false, false)
	}

	newHead := gs.Head().Step(gs.Heading, config.CellSize)

	newHead, terminal, redirected := gs.applyBoundary(newHead, config)
	if terminal {
		gs.GameOver = true
		if config.BoundaryMode == BoundaryWall {
			gs.Cause = "wall"
			gs.Message = config.Messages.WallHit
		} else {
			gs.Cause = "gate"
			gs.Message = config.Messages.GateHit
		}
		gs.recordTick(newHead, false, redirected)
		return gs.snapshot(false, redirected)
	}

	// Self-collision against the body as it will exist after trimming.
	for _, seg := range gs.Body[1:] {
		if seg == newHead {
			gs.GameOver = true
			gs.Cause = "self_collision"
			gs.Message = config.Messages.SelfCollision
			gs.recordTick(newHead, false, redirected)
			return gs.snapshot(false, redirected)
		}
	}

	ate := gs.Food != nil && *gs.Food == newHead

	gs.Body = append(gs.Body, newHead)
	if ate {
		gs.Food = nil
		gs.Message = fmt.Sprintf(config.Messages.FoodEaten, gs.Score())
	} else {
		gs.Body = gs.Body[1:]
		if redirected && config.Messages.Redirected != "" {
			gs.Message = config.Messages.Redirected
		} else if config.Messages.TickStatus != "" {
			gs.Message = fmt.Sprintf(config.Messages.TickStatus, len(gs.Body))
		}
	}

	// Keep exactly one food on the board for the next tick.
	if gs.Food == nil {
		if food, ok := SpawnFood(gs.Body, config, rng); ok {
			gs.Food = &food
		}
	}

	gs.recordTick(newHead, ate, redirected)
	return gs.snapshot(true, redirected)
}

// recordTick appends a tick to the history and bumps the tick counter
func (gs *GameState) recordTick(head Position, ate, redirected bool) {
	gs.Ticks++
	gs.TickHistory = append(gs.TickHistory, TickRecord{
		TickNumber: gs.Ticks,
		Heading:    gs.Heading,
		Head:       head,
		Ate:        ate,
		Redirected: redirected,
		Alive:      !gs.GameOver,
		Timestamp:  time.Now().Unix(),
	})
}

// snapshot copies the per-tick output consumed by the driving layer
func (gs *GameState) snapshot(alive, redirected bool) *TickResult {
	body := make([]Position, len(gs.Body))
	copy(body, gs.Body)

	var food *Position
	if gs.Food != nil {
		f := *gs.Food
		food = &f
	}

	ate := false
	if n := len(gs.TickHistory); n > 0 && gs.TickHistory[n-1].TickNumber == gs.Ticks {
		ate = gs.TickHistory[n-1].Ate
	}

	return &TickResult{
		TickNumber: gs.Ticks,
		Body:       body,
		Food:       food,
		Score:      gs.Score(),
		Alive:      alive && !gs.GameOver,
		Ate:        ate,
		Redirected: redirected,
		Heading:    gs.Heading,
		Cause:      gs.Cause,
		Message:    gs.Message,
	}
}
