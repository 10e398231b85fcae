package engine

import "math/rand"

// SpawnFood picks a food cell uniformly at random among grid cells not
// occupied by the body. The ok result is false only when the body covers
// the entire grid.
//
// The caller owns the rng so tests can seed it for deterministic placement.
func SpawnFood(body []Position, config *GameConfig, rng *rand.Rand) (Position, bool) {
	occupied := make(map[Position]struct{}, len(body))
	for _, seg := range body {
		occupied[seg] = struct{}{}
	}

	free := make([]Position, 0, config.GridColumns()*config.GridRows()-len(body))
	for y := 0; y < config.Height; y += config.CellSize {
		for x := 0; x < config.Width; x += config.CellSize {
			p := Position{X: x, Y: y}
			if _, ok := occupied[p]; ok {
				continue
			}
			free = append(free, p)
		}
	}

	if len(free) == 0 {
		return Position{}, false
	}
	return free[rng.Intn(len(free))], true
}
