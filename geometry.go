package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Point represents a point in planar coordinates (pixels or projected units)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLng represents a geographic coordinate in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents an axis-aligned rectangle in planar coordinates.
// Invariant: Min.X <= Max.X and Min.Y <= Max.Y.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceMeters calculates the great-circle distance in meters between two
// geographic coordinates
func (ll LatLng) DistanceMeters(other LatLng) float64 {
	return geo.Distance(orb.Point{ll.Lng, ll.Lat}, orb.Point{other.Lng, other.Lat})
}

// sqDist returns the squared Euclidean distance between two points
func sqDist(p1, p2 Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return dx*dx + dy*dy
}

// sqClosestPointOnSegment projects p onto segment ab with the parameter
// clamped to [0,1] and returns the clamped point together with the squared
// distance from p to it. When a == b the dot product is zero, the parameter
// branch is skipped and the result falls back to a.
func sqClosestPointOnSegment(p, a, b Point) (Point, float64) {
	x, y := a.X, a.Y
	dx, dy := b.X-x, b.Y-y

	dot := dx*dx + dy*dy
	if dot > 0 {
		t := ((p.X-x)*dx + (p.Y-y)*dy) / dot
		if t > 1 {
			x, y = b.X, b.Y
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}

	dx = p.X - x
	dy = p.Y - y
	return Point{X: x, Y: y}, dx*dx + dy*dy
}

// ClosestPointOnSegment returns the point on segment ab closest to p
func ClosestPointOnSegment(p, a, b Point) Point {
	closest, _ := sqClosestPointOnSegment(p, a, b)
	return closest
}

// PointToSegmentDistance returns the distance from p to segment ab
func PointToSegmentDistance(p, a, b Point) float64 {
	_, sq := sqClosestPointOnSegment(p, a, b)
	return math.Sqrt(sq)
}

// boundsOf calculates the axis-aligned bounding box of a point sequence.
// The sequence must not be empty.
func boundsOf(points []Point) Bounds {
	bounds := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bounds.Min.X = math.Min(bounds.Min.X, p.X)
		bounds.Min.Y = math.Min(bounds.Min.Y, p.Y)
		bounds.Max.X = math.Max(bounds.Max.X, p.X)
		bounds.Max.Y = math.Max(bounds.Max.Y, p.Y)
	}
	return bounds
}
