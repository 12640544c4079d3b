package geo

// Point is a position in display pixel coordinates
type Point struct {
	X float64
	Y float64
}

// Rect is the on-screen rectangle the current frame occupies
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Center returns the rectangle's center point
func (r Rect) Center() Point {
	return Point{
		X: r.MinX + (r.MaxX-r.MinX)/2,
		Y: r.MinY + (r.MaxY-r.MinY)/2,
	}
}

// LatLon is a WGS84 coordinate pair
type LatLon struct {
	Lat float64
	Lon float64
}

// PinpointStopgap maps a point of interest to display pixels.
//
// Stopgap while the provider's coordinate system is worked out; it does
// not follow slippy-map tiles and the GPS input is currently ignored.
// The fudge factors below place the marker roughly right for the default
// region only. TODO: replace with the provider's real tile projection.
func PinpointStopgap(imageRect Rect, _ LatLon) Point {
	c := imageRect.Center()
	return Point{X: c.X * 1.045, Y: c.Y * 0.68}
}
