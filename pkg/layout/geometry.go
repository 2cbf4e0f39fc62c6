package layout

// Point is a position in diagram coordinates. X grows rightward (the flow
// direction of Seq composition), Y grows downward (the stacking direction
// of Par composition).
type Point struct {
	X float64
	Y float64
}

// Add returns the translation of p by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Mul returns p scaled uniformly by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Size is the extent of a node's bounding box.
type Size struct {
	W float64
	H float64
}
