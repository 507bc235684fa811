// Package trail keeps a bounded history of pendulum tip positions.
package trail

import "github.com/san-kum/pendlab/internal/dynamo"

// Point is a 2D tip position in model coordinates.
type Point struct {
	X, Y dynamo.Real
}

// Ring is a fixed-capacity circular buffer of recent points. Once full,
// every append overwrites the oldest point. Appends are O(1) and never
// fail; the buffer is never cleared or grown.
type Ring struct {
	points []Point
	cursor int
	count  int
}

// DefaultCapacity matches the trace length of the original renderer.
const DefaultCapacity = 1024

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{points: make([]Point, capacity)}
}

func (r *Ring) Append(p Point) {
	r.points[r.cursor] = p
	r.cursor = (r.cursor + 1) % len(r.points)
	if r.count < len(r.points) {
		r.count++
	}
}

func (r *Ring) Len() int { return r.count }

func (r *Ring) Cap() int { return len(r.points) }

// Snapshot copies out the retained points, oldest first. Consumers treat
// the result as an unordered point cloud.
func (r *Ring) Snapshot() []Point {
	out := make([]Point, r.count)
	if r.count < len(r.points) {
		copy(out, r.points[:r.count])
		return out
	}
	n := copy(out, r.points[r.cursor:])
	copy(out[n:], r.points[:r.cursor])
	return out
}
