package main

import (
	"errors"
	"log"
	"math"
)

// ErrEmptyGeometry is returned when a center is requested for a geometry that
// holds no points
var ErrEmptyGeometry = errors.New("latlngs not passed")

// smallBoundsArea is the approximate bounding-box area, in square meters,
// below which rounding errors show up in center computation. Geometries
// smaller than this are translated to their centroid before projecting.
const smallBoundsArea = 1700

// Geometry is a polyline's coordinate payload: either a single ring of
// positions or a set of rings. The variant is explicit so callers never have
// to sniff nesting depth.
type Geometry struct {
	flat  bool
	rings [][]LatLng
}

// NewRing wraps a single ring of positions
func NewRing(points []LatLng) Geometry {
	return Geometry{flat: true, rings: [][]LatLng{points}}
}

// NewMultiRing wraps a set of rings
func NewMultiRing(rings [][]LatLng) Geometry {
	return Geometry{flat: false, rings: rings}
}

// IsFlat reports whether the geometry is a single ring
func (g Geometry) IsFlat() bool {
	return g.flat
}

// Rings returns the underlying rings
func (g Geometry) Rings() [][]LatLng {
	return g.rings
}

// PolylineCenter computes the geographic point halfway along a polyline's
// length. Multi-ring geometries are reduced to their first ring with a
// warning. Small geometries are shifted to their centroid before projecting
// so the planar arithmetic happens near the origin, where float64 precision
// is best.
func PolylineCenter(g Geometry, proj Projection) (LatLng, error) {
	rings := g.Rings()
	if len(rings) == 0 || len(rings[0]) == 0 {
		return LatLng{}, ErrEmptyGeometry
	}

	ring := rings[0]
	if !g.IsFlat() {
		log.Printf("⚠️  Center requested for a multi-ring geometry, using the first ring only\n")
	}

	origin := LatLng{}
	if boundsArea(ring) < smallBoundsArea {
		origin = ringCentroid(ring)
	}

	points := make([]Point, len(ring))
	for i, ll := range ring {
		points[i] = proj.Project(LatLng{Lat: ll.Lat - origin.Lat, Lng: ll.Lng - origin.Lng})
	}

	var totalDist float64
	for i := 0; i+1 < len(points); i++ {
		totalDist += proj.Distance(points[i], points[i+1])
	}
	halfDist := totalDist / 2

	var center Point
	if halfDist == 0 {
		// All points coincide
		center = points[0]
	} else {
		var dist float64
		for i := 0; i+1 < len(points); i++ {
			p1, p2 := points[i], points[i+1]
			segDist := proj.Distance(p1, p2)
			dist += segDist

			if dist > halfDist {
				ratio := (dist - halfDist) / segDist
				center = Point{
					X: p2.X - ratio*(p2.X-p1.X),
					Y: p2.Y - ratio*(p2.Y-p1.Y),
				}
				break
			}
		}
	}

	ll := proj.Unproject(center)
	return LatLng{Lat: ll.Lat + origin.Lat, Lng: ll.Lng + origin.Lng}, nil
}

// boundsArea approximates the area covered by a ring's geographic bounding
// box: the NW-SW side times the NE-NW side, both as great-circle distances.
func boundsArea(ring []LatLng) float64 {
	minLat, maxLat := ring[0].Lat, ring[0].Lat
	minLng, maxLng := ring[0].Lng, ring[0].Lng
	for _, ll := range ring[1:] {
		minLat = math.Min(minLat, ll.Lat)
		maxLat = math.Max(maxLat, ll.Lat)
		minLng = math.Min(minLng, ll.Lng)
		maxLng = math.Max(maxLng, ll.Lng)
	}

	nw := LatLng{Lat: maxLat, Lng: minLng}
	sw := LatLng{Lat: minLat, Lng: minLng}
	ne := LatLng{Lat: maxLat, Lng: maxLng}

	return nw.DistanceMeters(sw) * ne.DistanceMeters(nw)
}

// ringCentroid computes the area-weighted centroid of a ring treated as a
// flat polygon
func ringCentroid(ring []LatLng) LatLng {
	var latSum, lngSum, area float64

	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		p1 := ring[i]
		p2 := ring[j]
		f := p1.Lat*p2.Lng - p2.Lat*p1.Lng
		latSum += (p1.Lat + p2.Lat) * f
		lngSum += (p1.Lng + p2.Lng) * f
		area += f * 3
	}

	if area == 0 {
		// Degenerate ring, every point collapses onto the same spot
		return ring[0]
	}

	return LatLng{Lat: latSum / area, Lng: lngSum / area}
}
