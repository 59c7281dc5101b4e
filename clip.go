package main

import "math"

// Cohen-Sutherland region codes: one bit per violated side of the bounds,
// zero for a point inside or on the boundary.
const (
	codeLeft   = 1
	codeRight  = 2
	codeBottom = 4
	codeTop    = 8
)

// bitCode classifies p against bounds
func bitCode(p Point, bounds Bounds) int {
	code := 0

	if p.X < bounds.Min.X {
		code |= codeLeft
	} else if p.X > bounds.Max.X {
		code |= codeRight
	}

	if p.Y < bounds.Min.Y {
		code |= codeBottom
	} else if p.Y > bounds.Max.Y {
		code |= codeTop
	}

	return code
}

// edgeIntersection computes where segment ab crosses the bounds edge named by
// code. Exactly one bit of code is honored per call, top to bottom to right
// to left. Rounding applies only to the intersection point created here.
func edgeIntersection(a, b Point, code int, bounds Bounds, round bool) Point {
	dx := b.X - a.X
	dy := b.Y - a.Y

	var x, y float64
	switch {
	case code&codeTop != 0:
		x = a.X + dx*(bounds.Max.Y-a.Y)/dy
		y = bounds.Max.Y
	case code&codeBottom != 0:
		x = a.X + dx*(bounds.Min.Y-a.Y)/dy
		y = bounds.Min.Y
	case code&codeRight != 0:
		x = bounds.Max.X
		y = a.Y + dy*(bounds.Max.X-a.X)/dx
	default: // codeLeft
		x = bounds.Min.X
		y = a.Y + dy*(bounds.Min.X-a.X)/dx
	}

	if round {
		return Point{X: math.Round(x), Y: math.Round(y)}
	}
	return Point{X: x, Y: y}
}

// Clipper clips the segments of one connected polyline against a rectangle.
// It caches the region code of each segment's second endpoint so clipping a
// chain of connected segments reclassifies every shared endpoint in O(1).
// A Clipper belongs to exactly one chain; chains clipped concurrently need
// one Clipper each.
type Clipper struct {
	lastCode int
}

// ClipSegment clips segment ab to bounds with the Cohen-Sutherland algorithm.
// The third return value is false when the segment lies fully outside and
// must be skipped. When useLastCode is set the code cached by the previous
// call is reused for a instead of recomputing it. When round is set, newly
// created intersection points are rounded to integer coordinates; original
// endpoints never are.
func (c *Clipper) ClipSegment(a, b Point, bounds Bounds, useLastCode, round bool) (Point, Point, bool) {
	var codeA int
	if useLastCode {
		codeA = c.lastCode
	} else {
		codeA = bitCode(a, bounds)
	}
	codeB := bitCode(b, bounds)

	// Cache b's code for the next segment of the chain, whatever the outcome.
	c.lastCode = codeB

	for {
		// Both endpoints inside: accept the segment unchanged.
		if codeA|codeB == 0 {
			return a, b, true
		}

		// Both endpoints on the same outside region: trivially reject.
		if codeA&codeB != 0 {
			return Point{}, Point{}, false
		}

		// Pick an outside endpoint, a first, and pull it to the boundary.
		codeOut := codeA
		if codeOut == 0 {
			codeOut = codeB
		}

		p := edgeIntersection(a, b, codeOut, bounds, round)
		newCode := bitCode(p, bounds)

		if codeOut == codeA {
			a = p
			codeA = newCode
		} else {
			b = p
			codeB = newCode
		}
	}
}

// ClipPolyline clips a connected polyline to bounds and returns the surviving
// pieces as contiguous point runs. Every segment after the first reuses the
// cached code of the endpoint it shares with its predecessor.
func (c *Clipper) ClipPolyline(points []Point, bounds Bounds, round bool) [][]Point {
	var parts [][]Point
	var part []Point

	for i := 0; i+1 < len(points); i++ {
		a, b, ok := c.ClipSegment(points[i], points[i+1], bounds, i > 0, round)
		if !ok {
			if len(part) > 0 {
				parts = append(parts, part)
				part = nil
			}
			continue
		}

		if len(part) == 0 {
			part = append(part, a)
		}
		part = append(part, b)

		// The segment was cut short on its way out, so the run ends here.
		if b != points[i+1] {
			parts = append(parts, part)
			part = nil
		}
	}

	if len(part) > 0 {
		parts = append(parts, part)
	}
	return parts
}
