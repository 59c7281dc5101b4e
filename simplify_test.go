package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// zigzag returns a polyline with small lateral noise around the x axis
func zigzag() []Point {
	points := make([]Point, 0, 21)
	for i := 0; i <= 20; i++ {
		y := 0.0
		switch i % 4 {
		case 1:
			y = 0.4
		case 3:
			y = -0.4
		}
		points = append(points, Point{X: float64(i), Y: y})
	}
	return points
}

func TestReducePoints(t *testing.T) {
	points := []Point{
		{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5},
	}

	// sqTolerance 4 keeps a point only when it is more than 2 away from the
	// last kept one
	reduced := reducePoints(points, 4)
	require.Equal(t, []Point{{X: 0}, {X: 3}, {X: 5}}, reduced)
}

func TestReducePointsKeepsLastPoint(t *testing.T) {
	points := []Point{{X: 0}, {X: 3}, {X: 3.5}}

	reduced := reducePoints(points, 4)

	// The final point survives even though it sits within tolerance of its
	// predecessor
	require.Equal(t, []Point{{X: 0}, {X: 3}, {X: 3.5}}, reduced)
}

func TestReducePointsEmpty(t *testing.T) {
	require.Empty(t, reducePoints(nil, 4))
}

func TestSimplifyDouglasPeuckerDropsInterior(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0.1},
		{X: 2, Y: -0.1},
		{X: 3, Y: 0.1},
		{X: 4, Y: 0},
	}

	simplified := simplifyDouglasPeucker(points, 0.25)
	require.Equal(t, []Point{{X: 0, Y: 0}, {X: 4, Y: 0}}, simplified)
}

func TestSimplifyDouglasPeuckerKeepsSpike(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 2, Y: 10},
		{X: 4, Y: 0},
	}

	simplified := simplifyDouglasPeucker(points, 1)
	require.Equal(t, points, simplified)
}

func TestSimplifyZeroToleranceReturnsCopy(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}

	out := Simplify(points, 0)
	require.Equal(t, points, out)

	// The returned slice must not alias the input
	out[0] = Point{X: 99, Y: 99}
	require.Equal(t, Point{X: 0, Y: 0}, points[0])
}

func TestSimplifyEmptyInput(t *testing.T) {
	require.Empty(t, Simplify(nil, 5))
	require.Empty(t, Simplify([]Point{}, 0))
}

func TestSimplifyPreservesEndpoints(t *testing.T) {
	points := zigzag()

	for _, tolerance := range []float64{0, 0.1, 0.5, 1, 10} {
		out := Simplify(points, tolerance)
		require.NotEmpty(t, out)
		require.Equal(t, points[0], out[0], "tolerance %v", tolerance)
		require.Equal(t, points[len(points)-1], out[len(out)-1], "tolerance %v", tolerance)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	points := zigzag()

	for _, tolerance := range []float64{0, 0.3, 1, 5} {
		once := Simplify(points, tolerance)
		twice := Simplify(once, tolerance)
		require.Equal(t, once, twice, "tolerance %v", tolerance)
	}
}

func TestSimplifyToleranceMonotonic(t *testing.T) {
	points := zigzag()

	prevCount := len(Simplify(points, 0))
	for _, tolerance := range []float64{0.1, 0.2, 0.5, 1, 2, 10} {
		count := len(Simplify(points, tolerance))
		require.LessOrEqual(t, count, prevCount, "tolerance %v", tolerance)
		prevCount = count
	}
}

func TestSimplifySinglePoint(t *testing.T) {
	points := []Point{{X: 7, Y: 7}}

	require.Equal(t, points, Simplify(points, 3))
	require.Equal(t, points, Simplify(points, 0))
}
