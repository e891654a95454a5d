// Package mapview is a small terminal map widget: a fixed viewport around a
// center point with labelled pins, rasterised and drawn as ASCII art.
package mapview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// TileLayer records a tile source and the attribution it requires.
type TileLayer struct {
	URLTemplate string
	Attribution string
}

// Marker is a pin placed on the map.
type Marker struct {
	pos   LatLng
	label string
}

// BindLabel sets the text shown next to the pin.
func (mk *Marker) BindLabel(text string) {
	mk.label = text
}

// Label returns the pin's text.
func (mk *Marker) Label() string {
	return mk.label
}

// Position returns where the pin is placed.
func (mk *Marker) Position() LatLng {
	return mk.pos
}

// Map is the widget state: viewport, tile layers and pins.
type Map struct {
	center  LatLng
	zoom    int
	caps    TerminalCapabilities
	layers  []TileLayer
	markers []*Marker
}

// New creates a map centered on center at the given zoom level.
func New(center LatLng, zoom int, caps TerminalCapabilities) *Map {
	return &Map{
		center: center,
		zoom:   zoom,
		caps:   caps,
	}
}

// Zoom returns the zoom level.
func (m *Map) Zoom() int {
	return m.zoom
}

// AddTileLayer adds a tile source to the map.
func (m *Map) AddTileLayer(urlTemplate, attribution string) {
	m.layers = append(m.layers, TileLayer{URLTemplate: urlTemplate, Attribution: attribution})
}

// TileLayers returns the configured tile sources.
func (m *Map) TileLayers() []TileLayer {
	return m.layers
}

// AddMarker places a pin and returns it.
func (m *Map) AddMarker(lat, lng float64) *Marker {
	mk := &Marker{pos: LatLng{Lat: lat, Lng: lng}}
	m.markers = append(m.markers, mk)
	return mk
}

// RemoveMarker takes a pin off the map. Unknown markers are ignored.
func (m *Map) RemoveMarker(mk *Marker) {
	for i, existing := range m.markers {
		if existing == mk {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return
		}
	}
}

// ClearMarkers removes every pin.
func (m *Map) ClearMarkers() {
	for len(m.markers) > 0 {
		m.RemoveMarker(m.markers[len(m.markers)-1])
	}
}

// Markers returns the pins currently on the map.
func (m *Map) Markers() []*Marker {
	return m.markers
}

var (
	colorWater  = color.RGBA{R: 0x1D, G: 0x22, B: 0x1E, A: 0xFF}
	colorGrid   = color.RGBA{R: 0x2A, G: 0x33, B: 0x2C, A: 0xFF}
	colorMarker = color.RGBA{R: 0xF3, G: 0x8B, B: 0xA8, A: 0xFF}
)

// cell size in source pixels; the canvas is rasterised at this resolution
// and then scaled down to one character per cell.
const (
	cellWidth  = 8
	cellHeight = 16
	gridStep   = 64
	pinRadius  = 10
)

// View draws the map into width x height cells followed by one line per
// labelled pin and the tile attribution.
func (m *Map) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	canvas := m.rasterize(width*cellWidth, height*cellHeight)
	art := renderImage(canvas, m.caps, width, height)

	var lines []string
	lines = append(lines, strings.TrimRight(art, "\n"))
	for _, mk := range m.markers {
		if mk.label == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("📍 %s (%.4f, %.4f)", mk.label, mk.pos.Lat, mk.pos.Lng))
	}
	for _, l := range m.layers {
		if l.Attribution != "" {
			lines = append(lines, l.Attribution)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Map) rasterize(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := project(m.center, m.zoom)
	originX, originY := cx-float64(w)/2, cy-float64(h)/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			wx, wy := int(originX)+x, int(originY)+y
			if mod(wx, gridStep) == 0 || mod(wy, gridStep) == 0 {
				img.SetRGBA(x, y, colorGrid)
			} else {
				img.SetRGBA(x, y, colorWater)
			}
		}
	}

	for _, mk := range m.markers {
		px, py := project(mk.pos, m.zoom)
		drawPin(img, int(px-originX), int(py-originY))
	}
	return img
}

func drawPin(img *image.RGBA, x, y int) {
	b := img.Bounds()
	for dy := -pinRadius; dy <= pinRadius; dy++ {
		for dx := -pinRadius; dx <= pinRadius; dx++ {
			if dx*dx+dy*dy > pinRadius*pinRadius {
				continue
			}
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.SetRGBA(p.X, p.Y, colorMarker)
			}
		}
	}
}

// project converts a position to Web Mercator world pixels at zoom.
func project(p LatLng, zoom int) (float64, float64) {
	size := 256 * math.Exp2(float64(zoom))
	lat := p.Lat * math.Pi / 180
	x := (p.Lng + 180) / 360 * size
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * size
	return x, y
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
