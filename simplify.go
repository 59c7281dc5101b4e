package main

// Simplify reduces the number of points in a polyline while keeping its shape
// within the given tolerance (in the same units as the points). Runs a cheap
// radial-distance pass first and Douglas-Peucker on what is left. A zero
// tolerance or empty input returns a fresh copy of the input, never the input
// slice itself.
func Simplify(points []Point, tolerance float64) []Point {
	if tolerance == 0 || len(points) == 0 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	sqTolerance := tolerance * tolerance

	points = reducePoints(points, sqTolerance)
	points = simplifyDouglasPeucker(points, sqTolerance)

	return points
}

// reducePoints drops points closer than the tolerance to the last kept point.
// The first point is always kept, and the last point is appended even when it
// falls within tolerance of its predecessor so the endpoint survives.
func reducePoints(points []Point, sqTolerance float64) []Point {
	if len(points) == 0 {
		return nil
	}

	reduced := []Point{points[0]}
	prev := 0

	for i := 1; i < len(points); i++ {
		if sqDist(points[i], points[prev]) > sqTolerance {
			reduced = append(reduced, points[i])
			prev = i
		}
	}

	if prev < len(points)-1 {
		reduced = append(reduced, points[len(points)-1])
	}

	return reduced
}

// simplifyDouglasPeucker keeps only the points that deviate from the chord of
// their span by more than the tolerance. Both endpoints are always kept. The
// divide-and-conquer recursion runs over an explicit span stack so stack
// depth stays bounded no matter how unbalanced the splits get.
func simplifyDouglasPeucker(points []Point, sqTolerance float64) []Point {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct{ first, last int }
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Find the interior point farthest from the chord. Strict comparison:
		// the first point reaching the maximum wins.
		maxSqDist := 0.0
		index := 0
		for i := s.first + 1; i < s.last; i++ {
			_, d := sqClosestPointOnSegment(points[i], points[s.first], points[s.last])
			if d > maxSqDist {
				index = i
				maxSqDist = d
			}
		}

		if maxSqDist > sqTolerance {
			keep[index] = true
			stack = append(stack, span{s.first, index}, span{index, s.last})
		}
	}

	simplified := make([]Point, 0, len(points))
	for i, p := range points {
		if keep[i] {
			simplified = append(simplified, p)
		}
	}
	return simplified
}
