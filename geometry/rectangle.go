// Package geometry defines simple value objects.
package geometry

// Rectangle is an axis aligned rectangle described by its sides.
type Rectangle struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRectangle returns rectangle with given sides.
func NewRectangle(width, height float64) Rectangle {
	return Rectangle{Width: width, Height: height}
}

// Area returns rectangle area.
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}
