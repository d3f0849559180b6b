package data

import (
	"github.com/EliCDavis/vector/vector3"
)

// RGB color of a point, 8 bit per channel
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// White is the fallback color used when a source carries no color channel.
var White = RGB{R: 255, G: 255, B: 255}

// Contains the data of a point cloud, namely the point coordinates and
// the per point colors. Positions and Colors are index aligned and always
// have the same length. Pipeline stages never mutate a PointCloud in
// place, each stage builds and returns a fresh one.
type PointCloud struct {
	Positions []vector3.Float64
	Colors    []RGB
}

// Builds a new PointCloud from the given parallel slices. The two slices
// are adopted, not copied.
func NewPointCloud(positions []vector3.Float64, colors []RGB) *PointCloud {
	return &PointCloud{
		Positions: positions,
		Colors:    colors,
	}
}

// Builds an empty PointCloud with capacity for n points
func NewEmptyPointCloud(n int) *PointCloud {
	return &PointCloud{
		Positions: make([]vector3.Float64, 0, n),
		Colors:    make([]RGB, 0, n),
	}
}

// Number of points stored in the cloud
func (c *PointCloud) Len() int {
	return len(c.Positions)
}

// Appends a single point keeping positions and colors aligned
func (c *PointCloud) Append(position vector3.Float64, color RGB) {
	c.Positions = append(c.Positions, position)
	c.Colors = append(c.Colors, color)
}
