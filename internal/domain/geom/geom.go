// Package geom provides the small vector/rectangle math shared by the
// tile index and the entity simulation.
package geom

// Vec2 is a 2D vector in world coordinates (pixels).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Rect is an axis-aligned rectangle in world coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the x coordinate of the rectangle center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the y coordinate of the rectangle center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the rectangle center point.
func (r Rect) Center() Vec2 { return Vec2{r.CenterX(), r.CenterY()} }

// Overlaps reports whether r and o intersect with positive area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ContainsPoint reports whether the point lies inside the rectangle.
func (r Rect) ContainsPoint(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
