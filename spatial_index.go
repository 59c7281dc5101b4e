package main

import (
	"github.com/dhconnelly/rtreego"
)

// PolylineEntry wraps one projected polyline for R-tree storage
type PolylineEntry struct {
	ID      int
	LatLngs []LatLng
	Points  []Point
	BBox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *PolylineEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// PolylineIndex manages viewport queries over a set of polylines
type PolylineIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewPolylineIndex projects the polylines and indexes them by bounding box
func NewPolylineIndex(proj Projection, polylines [][]LatLng) *PolylineIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	size := 0

	for id, ring := range polylines {
		if len(ring) == 0 {
			continue
		}

		points := make([]Point, len(ring))
		for i, ll := range ring {
			points[i] = proj.Project(ll)
		}

		rect, err := rectFor(boundsOf(points))
		if err != nil {
			continue
		}

		tree.Insert(&PolylineEntry{
			ID:      id,
			LatLngs: ring,
			Points:  points,
			BBox:    rect,
		})
		size++
	}

	return &PolylineIndex{tree: tree, size: size}
}

// QueryViewport returns the entries whose bounding boxes intersect the
// given viewport
func (idx *PolylineIndex) QueryViewport(viewport Bounds) []*PolylineEntry {
	rect, err := rectFor(viewport)
	if err != nil {
		return []*PolylineEntry{}
	}

	results := idx.tree.SearchIntersect(rect)
	entries := make([]*PolylineEntry, 0, len(results))
	for _, item := range results {
		entries = append(entries, item.(*PolylineEntry))
	}

	return entries
}

// Len returns the number of indexed polylines
func (idx *PolylineIndex) Len() int {
	return idx.size
}

// rectFor converts a Bounds to an rtreego rectangle. Zero extents are padded
// because rtreego rejects degenerate rectangles.
func rectFor(bounds Bounds) (rtreego.Rect, error) {
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	if w == 0 {
		w = 1e-9
	}
	if h == 0 {
		h = 1e-9
	}

	return rtreego.NewRect(
		rtreego.Point{bounds.Min.X, bounds.Min.Y},
		[]float64{w, h},
	)
}
