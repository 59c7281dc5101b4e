package main

import (
	"log"
	"os"
	"path/filepath"

	geojson "github.com/paulmach/go.geojson"
)

// loadPolylinesFromDir loads all GeoJSON files from a directory and extracts
// their polylines. LineStrings load as-is, MultiLineStrings contribute one
// polyline per part, and Polygons contribute their outer ring.
func loadPolylinesFromDir(dir string) ([][]LatLng, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	var polylines [][]LatLng
	log.Printf("Loading geometries from %d GeoJSON files...\n", len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		count := 0
		for _, feature := range fc.Features {
			lines := extractPolylines(feature.Geometry)
			polylines = append(polylines, lines...)
			count += len(lines)
		}

		log.Printf("   ✅ Loaded %d polylines from %s\n", count, filepath.Base(file))
	}

	log.Printf("Total polylines loaded: %d\n", len(polylines))
	return polylines, nil
}

// extractPolylines converts a GeoJSON geometry into LatLng sequences
func extractPolylines(g *geojson.Geometry) [][]LatLng {
	if g == nil {
		return nil
	}

	var out [][]LatLng
	switch {
	case g.IsLineString():
		out = append(out, toLatLngs(g.LineString))

	case g.IsMultiLineString():
		for _, line := range g.MultiLineString {
			out = append(out, toLatLngs(line))
		}

	case g.IsPolygon():
		// Outer ring only
		if len(g.Polygon) > 0 {
			out = append(out, toLatLngs(g.Polygon[0]))
		}

	case g.IsCollection():
		for _, sub := range g.Geometries {
			out = append(out, extractPolylines(sub)...)
		}
	}

	return out
}

// toLatLngs converts GeoJSON positions ([lng, lat]) to LatLng values
func toLatLngs(coords [][]float64) []LatLng {
	latlngs := make([]LatLng, 0, len(coords))
	for _, c := range coords {
		if len(c) >= 2 {
			latlngs = append(latlngs, LatLng{Lat: c[1], Lng: c[0]})
		}
	}
	return latlngs
}
