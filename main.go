package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/urfave/cli"
)

var (
	globalIndex *PolylineIndex
	indexMutex  sync.RWMutex

	dataDir          string
	defaultTolerance float64
)

// projection is the planar coordinate system used by the index and the
// viewport pipeline. Center requests go through it as well.
var projection Projection = MercatorProjection{}

type SimplifyRequest struct {
	Points    []Point `json:"points"`
	Tolerance float64 `json:"tolerance"`
}

type SimplifyResponse struct {
	Points        []Point `json:"points"`
	OriginalCount int     `json:"originalCount"`
	Count         int     `json:"count"`
}

type ClipRequest struct {
	Points []Point `json:"points"`
	Bounds Bounds  `json:"bounds"`
	Round  bool    `json:"round"`
}

type ClipResponse struct {
	Parts [][]Point `json:"parts"`
}

type CenterRequest struct {
	LatLngs []LatLng   `json:"latlngs,omitempty"`
	Rings   [][]LatLng `json:"rings,omitempty"`
}

type CenterResponse struct {
	Center  LatLng `json:"center"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /simplify - reduce a polyline's point count within a tolerance
func simplifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SimplifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid simplify request: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Tolerance < 0 {
		http.Error(w, "Tolerance must be non-negative", http.StatusBadRequest)
		return
	}

	simplified := Simplify(req.Points, req.Tolerance)
	log.Printf("📉 Simplified %d points to %d (tolerance %.3f)\n",
		len(req.Points), len(simplified), req.Tolerance)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SimplifyResponse{
		Points:        simplified,
		OriginalCount: len(req.Points),
		Count:         len(simplified),
	})
}

// POST /clip - clip a polyline against a rectangle
func clipHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid clip request: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Bounds.Min.X > req.Bounds.Max.X || req.Bounds.Min.Y > req.Bounds.Max.Y {
		http.Error(w, "Bounds min must not exceed max", http.StatusBadRequest)
		return
	}

	clipper := &Clipper{}
	parts := clipper.ClipPolyline(req.Points, req.Bounds, req.Round)
	log.Printf("✂️  Clipped %d points into %d parts\n", len(req.Points), len(parts))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ClipResponse{Parts: parts})
}

// POST /polylineCenter - compute the midpoint of a polyline by length
func centerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid center request: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var geometry Geometry
	if len(req.Rings) > 0 {
		geometry = NewMultiRing(req.Rings)
	} else {
		geometry = NewRing(req.LatLngs)
	}

	center, err := PolylineCenter(geometry, projection)
	if err != nil {
		log.Printf("❌ Center computation failed: %v\n", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CenterResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	log.Printf("📍 Center: (%.6f, %.6f)\n", center.Lat, center.Lng)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CenterResponse{
		Center:  center,
		Success: true,
	})
}

// POST /loadGeometries - (re)load the GeoJSON data directory into the index
func loadGeometriesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Load Geometries request received")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type LoadRequest struct {
		Force bool `json:"force,omitempty"` // Set to true to force reload
	}

	var req LoadRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	indexMutex.RLock()
	alreadyLoaded := globalIndex != nil
	indexMutex.RUnlock()

	if alreadyLoaded && !req.Force {
		log.Println("⚠️  Index already loaded, set force:true to reload")
		log.Println("========================================")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Index already loaded",
			"message": "Geometries are already indexed. Set 'force: true' to reload.",
		})
		return
	}

	polylines, err := loadPolylinesFromDir(dataDir)
	if err != nil {
		log.Printf("❌ Failed to load geometries: %v\n", err)
		http.Error(w, "Failed to load geometries", http.StatusInternalServerError)
		return
	}

	index := NewPolylineIndex(projection, polylines)

	indexMutex.Lock()
	globalIndex = index
	indexMutex.Unlock()

	log.Printf("✅ Indexed %d polylines\n", index.Len())
	log.Println("========================================")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":      true,
		"numPolylines": index.Len(),
	})
}

// GET /query - polylines intersecting a viewport, simplified and clipped to it
func queryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	viewport, err := parseViewport(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tolerance := defaultTolerance
	if s := r.URL.Query().Get("tolerance"); s != "" {
		tolerance, err = strconv.ParseFloat(s, 64)
		if err != nil || tolerance < 0 {
			http.Error(w, "Invalid tolerance", http.StatusBadRequest)
			return
		}
	}

	indexMutex.RLock()
	index := globalIndex
	indexMutex.RUnlock()

	if index == nil {
		http.Error(w, "No geometries indexed. Call /loadGeometries first", http.StatusBadRequest)
		return
	}

	type QueryPolyline struct {
		ID    int       `json:"id"`
		Parts [][]Point `json:"parts"`
	}

	entries := index.QueryViewport(viewport)
	polylines := make([]QueryPolyline, 0, len(entries))

	for _, entry := range entries {
		simplified := Simplify(entry.Points, tolerance)

		// One clipper per polyline: the cached code is only valid within
		// a single connected chain
		clipper := &Clipper{}
		parts := clipper.ClipPolyline(simplified, viewport, false)
		if len(parts) == 0 {
			continue
		}

		polylines = append(polylines, QueryPolyline{ID: entry.ID, Parts: parts})
	}

	log.Printf("🔍 Viewport query matched %d of %d indexed polylines\n",
		len(polylines), index.Len())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"polylines": polylines,
		"count":     len(polylines),
	})
}

// parseViewport reads minX/minY/maxX/maxY query parameters
func parseViewport(r *http.Request) (Bounds, error) {
	var bounds Bounds
	values := map[string]*float64{
		"minX": &bounds.Min.X,
		"minY": &bounds.Min.Y,
		"maxX": &bounds.Max.X,
		"maxY": &bounds.Max.Y,
	}

	for name, dst := range values {
		v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("invalid viewport parameter %q", name)
		}
		*dst = v
	}

	if bounds.Min.X > bounds.Max.X || bounds.Min.Y > bounds.Max.Y {
		return Bounds{}, fmt.Errorf("viewport min must not exceed max")
	}
	return bounds, nil
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	indexMutex.RLock()
	hasIndex := globalIndex != nil
	numPolylines := 0
	if globalIndex != nil {
		numPolylines = globalIndex.Len()
	}
	indexMutex.RUnlock()

	status := "ready"
	if !hasIndex {
		status = "waiting for geometries"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       status,
		"hasIndex":     hasIndex,
		"numPolylines": numPolylines,
	})
}

func run(addr string) error {
	log.Println("========================================")
	log.Println("🚀 Polyline Geometry Engine")
	log.Println("========================================")
	log.Printf("Checking %s for GeoJSON geometries...\n", dataDir)

	if polylines, err := loadPolylinesFromDir(dataDir); err == nil && len(polylines) > 0 {
		index := NewPolylineIndex(projection, polylines)
		indexMutex.Lock()
		globalIndex = index
		indexMutex.Unlock()
		log.Printf("✅ Indexed %d polylines on startup\n", index.Len())
	} else {
		log.Println("ℹ️  No geometries found (this is normal on first run)")
		log.Println("   Add GeoJSON files and call /loadGeometries")
	}
	log.Println("")

	http.HandleFunc("/simplify", corsMiddleware(simplifyHandler))
	http.HandleFunc("/clip", corsMiddleware(clipHandler))
	http.HandleFunc("/polylineCenter", corsMiddleware(centerHandler))
	http.HandleFunc("/loadGeometries", corsMiddleware(loadGeometriesHandler))
	http.HandleFunc("/query", corsMiddleware(queryHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Printf("Server starting on %s\n", addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /simplify        - Reduce a polyline's point count")
	log.Println("  POST /clip            - Clip a polyline to a rectangle")
	log.Println("  POST /polylineCenter  - Midpoint of a polyline by length")
	log.Println("  POST /loadGeometries  - (Re)load the GeoJSON data directory")
	log.Println("  GET  /query           - Simplified+clipped polylines in a viewport")
	log.Println("  GET  /health          - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	return http.ListenAndServe(addr, nil)
}

func main() {
	app := cli.NewApp()
	app.Name = "geometry-engine"
	app.Usage = "simplification, clipping and center queries for map polylines"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Value: ":8080",
			Usage: "listen address",
		},
		cli.StringFlag{
			Name:  "data-dir",
			Value: "geometries",
			Usage: "directory of GeoJSON files to index at startup",
		},
		cli.Float64Flag{
			Name:  "tolerance",
			Value: 1.0,
			Usage: "default simplification tolerance for viewport queries",
		},
	}
	app.Action = func(c *cli.Context) error {
		dataDir = c.String("data-dir")
		defaultTolerance = c.Float64("tolerance")
		return run(c.String("addr"))
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
