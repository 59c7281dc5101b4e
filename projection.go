package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Projection converts between geographic and planar coordinates and measures
// distance in the planar space. PolylineCenter is written against this
// interface so callers can plug in whatever coordinate system their map uses.
type Projection interface {
	Project(ll LatLng) Point
	Unproject(p Point) LatLng
	Distance(a, b Point) float64
}

// MercatorProjection projects WGS84 coordinates to spherical-mercator meters,
// the projection used by most web maps
type MercatorProjection struct{}

// Project converts a geographic coordinate to mercator meters
func (MercatorProjection) Project(ll LatLng) Point {
	p := project.WGS84.ToMercator(orb.Point{ll.Lng, ll.Lat})
	return Point{X: p[0], Y: p[1]}
}

// Unproject converts mercator meters back to a geographic coordinate
func (MercatorProjection) Unproject(p Point) LatLng {
	g := project.Mercator.ToWGS84(orb.Point{p.X, p.Y})
	return LatLng{Lat: g[1], Lng: g[0]}
}

// Distance returns the planar distance between two projected points
func (MercatorProjection) Distance(a, b Point) float64 {
	return a.Distance(b)
}
