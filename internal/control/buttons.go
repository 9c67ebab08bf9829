package control

// Edges marks buttons that transitioned from released to pressed on this
// tick.
type Edges struct {
	A, B, X, Y, LB, RB bool
}

// EdgeDetector compares each tick's button state against the exact previous
// tick's state. A button held across ticks produces a single edge.
type EdgeDetector struct {
	prev Buttons
}

// Update returns the rising edges for the current button state and records
// it as the previous state for the next tick.
func (d *EdgeDetector) Update(cur Buttons) Edges {
	edges := Edges{
		A:  cur.A && !d.prev.A,
		B:  cur.B && !d.prev.B,
		X:  cur.X && !d.prev.X,
		Y:  cur.Y && !d.prev.Y,
		LB: cur.LB && !d.prev.LB,
		RB: cur.RB && !d.prev.RB,
	}

	d.prev = cur

	return edges
}
