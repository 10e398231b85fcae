package engine

import (
	"fmt"
	"strings"
)

// ManhattanDistance calculates the Manhattan distance between two positions
// in pixels.
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// FoodDistanceCells returns the Manhattan distance from the head to the
// food in cell units, or -1 when no food is on the board.
func FoodDistanceCells(state *GameState, config *GameConfig) int {
	if state.Food == nil {
		return -1
	}
	return ManhattanDistance(state.Head(), *state.Food) / config.CellSize
}

// FreeCellCount returns the number of grid cells not occupied by the body
func FreeCellCount(state *GameState, config *GameConfig) int {
	return config.GridColumns()*config.GridRows() - len(state.Body)
}

// DescribeFood renders a compact human-readable hint about where the food
// sits relative to the head, for clients without a rendered view.
func DescribeFood(state *GameState, config *GameConfig) string {
	if state.Food == nil {
		return "no food on the board"
	}

	head := state.Head()
	food := *state.Food
	var parts []string

	if dx := (food.X - head.X) / config.CellSize; dx > 0 {
		parts = append(parts, fmt.Sprintf("%d right", dx))
	} else if dx < 0 {
		parts = append(parts, fmt.Sprintf("%d left", -dx))
	}
	if dy := (food.Y - head.Y) / config.CellSize; dy > 0 {
		parts = append(parts, fmt.Sprintf("%d down", dy))
	} else if dy < 0 {
		parts = append(parts, fmt.Sprintf("%d up", -dy))
	}

	if len(parts) == 0 {
		return "food under the head"
	}
	return "food " + strings.Join(parts, ", ")
}
