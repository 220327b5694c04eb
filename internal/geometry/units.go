// Package geometry converts between physical page units (millimeters) and
// interaction units (screen pixels) and computes gesture deltas.
package geometry

import "math"

// PxPerMM is the reference conversion at zoom 1 (96 dpi screen).
const PxPerMM = 96.0 / 25.4

// ZoomRange bounds the editor zoom factor.
type ZoomRange struct {
	Min float64
	Max float64
}

// DefaultZoomRange is used when no range is configured.
var DefaultZoomRange = ZoomRange{Min: 0.25, Max: 4}

// Clamp returns z limited to the range. Non-positive or NaN zooms map to Min.
func (r ZoomRange) Clamp(z float64) float64 {
	if math.IsNaN(z) || z < r.Min {
		return r.Min
	}
	if z > r.Max {
		return r.Max
	}
	return z
}

// Contains reports whether z lies inside the range.
func (r ZoomRange) Contains(z float64) bool {
	return z >= r.Min && z <= r.Max
}

// ToDisplayUnits converts millimeters to pixels at the given zoom.
func ToDisplayUnits(mm, zoom float64) float64 {
	return mm * PxPerMM * zoom
}

// ToPhysicalUnits converts pixels to millimeters at the given zoom.
// A zero zoom yields 0 rather than an infinity.
func ToPhysicalUnits(px, zoom float64) float64 {
	if zoom == 0 {
		return 0
	}
	return px / (PxPerMM * zoom)
}

// Point is a position in millimeters.
type Point struct {
	X float64
	Y float64
}

// DragDelta turns a pointer delta (pixels) into a physical delta (mm).
// Callers pass the total delta since the gesture started, not per-frame
// increments, so that rounding never accumulates.
func DragDelta(dxPx, dyPx, zoom float64) Point {
	return Point{
		X: ToPhysicalUnits(dxPx, zoom),
		Y: ToPhysicalUnits(dyPx, zoom),
	}
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid
// disables snapping.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}
