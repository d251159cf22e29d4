package particles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Node is one animated point of the backdrop
type Node struct {
	Pos   r2.Vec  `json:"pos"`
	Vel   r2.Vec  `json:"vel"`
	Scale float64 `json:"scale"`
}

// Edge is a proximity edge drawn in a frame, I < J
type Edge struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	Distance float64 `json:"distance"`
}

// advance moves the node one frame and reflects it off the bounds.
// Each axis is handled independently.
func (n *Node) advance(w, h float64) {
	n.Pos = r2.Add(n.Pos, n.Vel)
	n.Pos.X, n.Vel.X = reflect(n.Pos.X, n.Vel.X, w)
	n.Pos.Y, n.Vel.Y = reflect(n.Pos.Y, n.Vel.Y, h)
}

// reflect clamps p into [0, max] and points v back inside when p crossed an edge.
// A node sitting exactly on an edge is left alone.
func reflect(p, v, max float64) (float64, float64) {
	switch {
	case p < 0:
		return 0, math.Abs(v)
	case p > max:
		return max, -math.Abs(v)
	}
	return p, v
}

// proximityBoost is the scale two nodes at distance d push each other to
func proximityBoost(d, maxDistance float64) float64 {
	return 1 + (maxDistance-d)/maxDistance
}
