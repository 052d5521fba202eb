package layout

// Point represents an (X, Y) coordinate.
type Point struct {
	X, Y float64
}

// Dimension is a width/height pair.
type Dimension struct {
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`
}

// Primary returns the extent along the scroll axis.
func (d Dimension) Primary(horizontal bool) float64 {
	if horizontal {
		return d.Width
	}
	return d.Height
}

// Cross returns the extent across the scroll axis.
func (d Dimension) Cross(horizontal bool) float64 {
	if horizontal {
		return d.Height
	}
	return d.Width
}
