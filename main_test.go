package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestSimplifyHandler(t *testing.T) {
	body := `{
		"points": [{"x":0,"y":0},{"x":1,"y":0.1},{"x":2,"y":-0.1},{"x":3,"y":0.1},{"x":4,"y":0}],
		"tolerance": 0.5
	}`

	w := postJSON(t, simplifyHandler, "/simplify", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SimplifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 5, resp.OriginalCount)
	require.Equal(t, 2, resp.Count)
	require.Equal(t, []Point{{X: 0, Y: 0}, {X: 4, Y: 0}}, resp.Points)
}

func TestSimplifyHandlerRejectsNegativeTolerance(t *testing.T) {
	w := postJSON(t, simplifyHandler, "/simplify", `{"points":[],"tolerance":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimplifyHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/simplify", nil)
	w := httptest.NewRecorder()
	simplifyHandler(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestClipHandler(t *testing.T) {
	body := `{
		"points": [{"x":-5,"y":5},{"x":5,"y":5},{"x":15,"y":5}],
		"bounds": {"min":{"x":0,"y":0},"max":{"x":10,"y":10}}
	}`

	w := postJSON(t, clipHandler, "/clip", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ClipResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, [][]Point{
		{{X: 0, Y: 5}, {X: 5, Y: 5}, {X: 10, Y: 5}},
	}, resp.Parts)
}

func TestClipHandlerRejectsInvertedBounds(t *testing.T) {
	body := `{
		"points": [],
		"bounds": {"min":{"x":10,"y":0},"max":{"x":0,"y":10}}
	}`

	w := postJSON(t, clipHandler, "/clip", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCenterHandler(t *testing.T) {
	body := `{"latlngs": [{"lat":0,"lng":0},{"lat":0.001,"lng":0},{"lat":0.002,"lng":0}]}`

	w := postJSON(t, centerHandler, "/polylineCenter", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CenterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.InDelta(t, 0.001, resp.Center.Lat, 1e-6)
	require.InDelta(t, 0.0, resp.Center.Lng, 1e-6)
}

func TestCenterHandlerEmptyGeometry(t *testing.T) {
	w := postJSON(t, centerHandler, "/polylineCenter", `{"latlngs": []}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp CenterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)
}

func TestQueryHandler(t *testing.T) {
	polylines := [][]LatLng{
		{{Lat: 5, Lng: -5}, {Lat: 5, Lng: 5}, {Lat: 5, Lng: 15}},
		{{Lat: 50, Lng: 50}, {Lat: 51, Lng: 51}},
	}

	indexMutex.Lock()
	prev := globalIndex
	globalIndex = NewPolylineIndex(flatProjection{}, polylines)
	indexMutex.Unlock()
	defer func() {
		indexMutex.Lock()
		globalIndex = prev
		indexMutex.Unlock()
	}()

	req := httptest.NewRequest(http.MethodGet, "/query?minX=0&minY=0&maxX=10&maxY=10&tolerance=0", nil)
	w := httptest.NewRecorder()
	queryHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool `json:"success"`
		Count     int  `json:"count"`
		Polylines []struct {
			ID    int       `json:"id"`
			Parts [][]Point `json:"parts"`
		} `json:"polylines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, 0, resp.Polylines[0].ID)
	require.Equal(t, [][]Point{
		{{X: 0, Y: 5}, {X: 5, Y: 5}, {X: 10, Y: 5}},
	}, resp.Polylines[0].Parts)
}

func TestQueryHandlerNoIndex(t *testing.T) {
	indexMutex.Lock()
	prev := globalIndex
	globalIndex = nil
	indexMutex.Unlock()
	defer func() {
		indexMutex.Lock()
		globalIndex = prev
		indexMutex.Unlock()
	}()

	req := httptest.NewRequest(http.MethodGet, "/query?minX=0&minY=0&maxX=10&maxY=10", nil)
	w := httptest.NewRecorder()
	queryHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandlerBadViewport(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/query?minX=10&minY=0&maxX=0&maxY=10", nil)
	w := httptest.NewRecorder()
	queryHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/query?minX=abc", nil)
	w = httptest.NewRecorder()
	queryHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	healthHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp, "status")
	require.Contains(t, resp, "numPolylines")
}
