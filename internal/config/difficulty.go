package config

// MoveInterval returns how many host ticks pass between world steps for
// the given score. The interval shrinks linearly from the base speed to
// the minimum as the score approaches MaxAt.
func (c SnakeConfig) MoveInterval(points int) int {
	base := max(c.Speed.MoveEveryTicks, 1)
	d := c.Difficulty
	if !d.Enabled || d.MaxAt <= 0 || d.MinMoveEveryTicks >= base {
		return base
	}
	lo := max(d.MinMoveEveryTicks, 1)

	progress := float64(max(points, 0)) / float64(d.MaxAt)
	if progress > 1 {
		progress = 1
	}
	return base - int(progress*float64(base-lo))
}
