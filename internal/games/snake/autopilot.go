package snake

import "github.com/vovakirdan/poopy-snake/internal/world"

var headings = [...]world.Direction{world.Up, world.Right, world.Down, world.Left}

// Autopilot picks a heading that moves the head closer to the reward on
// the torus while avoiding the body and the hazard. With no safe move it
// keeps the current heading.
func Autopilot(w *world.World) world.Direction {
	current := w.Direction()
	target, hasTarget := w.RewardCell()
	hazard, hasHazard := w.PoopCell()

	body := make(map[int]struct{}, w.SnakeLength())
	cells := w.SnakeCells()
	// The tail moves away this step unless the snake is about to grow.
	for _, c := range cells[:max(len(cells)-1, 0)] {
		body[c] = struct{}{}
	}

	best, bestDist := current, -1
	for _, d := range headings {
		cell, ok := w.NextCell(d)
		if !ok {
			continue
		}
		if _, hit := body[cell]; hit {
			continue
		}
		if hasHazard && cell == hazard {
			continue
		}

		dist := 0
		if hasTarget {
			dist = torusDistance(w.Width(), cell, target)
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && d == current) {
			best, bestDist = d, dist
		}
	}
	return best
}

// torusDistance is the Manhattan distance between two cells when both
// axes wrap.
func torusDistance(width, a, b int) int {
	dx := abs(a%width - b%width)
	dy := abs(a/width - b/width)
	return min(dx, width-dx) + min(dy, width-dy)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
