package geometry

import (
	"math"

	"github.com/EliCDavis/vector/vector3"
)

// Axis aligned bounding box of a set of points
type BoundingBox struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
	Zmin float64
	Zmax float64
}

// Instantiates a new BoundingBox from the given extremes
func NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax float64) *BoundingBox {
	return &BoundingBox{
		Xmin: xmin,
		Xmax: xmax,
		Ymin: ymin,
		Ymax: ymax,
		Zmin: zmin,
		Zmax: zmax,
	}
}

// Computes the BoundingBox enclosing the given points. An empty input
// returns a zero sized box at the origin.
func NewBoundingBoxFromPoints(points []vector3.Float64) *BoundingBox {
	if len(points) == 0 {
		return NewBoundingBox(0, 0, 0, 0, 0, 0)
	}

	box := NewBoundingBox(
		points[0].X(), points[0].X(),
		points[0].Y(), points[0].Y(),
		points[0].Z(), points[0].Z(),
	)

	for _, p := range points[1:] {
		box.Xmin = math.Min(box.Xmin, p.X())
		box.Xmax = math.Max(box.Xmax, p.X())
		box.Ymin = math.Min(box.Ymin, p.Y())
		box.Ymax = math.Max(box.Ymax, p.Y())
		box.Zmin = math.Min(box.Zmin, p.Z())
		box.Zmax = math.Max(box.Zmax, p.Z())
	}

	return box
}

func (b *BoundingBox) Min() vector3.Float64 {
	return vector3.New(b.Xmin, b.Ymin, b.Zmin)
}

func (b *BoundingBox) Max() vector3.Float64 {
	return vector3.New(b.Xmax, b.Ymax, b.Zmax)
}

// Length of the diagonal between the two box extremes
func (b *BoundingBox) Diagonal() float64 {
	return b.Max().Sub(b.Min()).Length()
}

// Mean of the given points. Returns the origin for an empty input.
func Centroid(points []vector3.Float64) vector3.Float64 {
	if len(points) == 0 {
		return vector3.Zero[float64]()
	}

	sum := vector3.Zero[float64]()
	for _, p := range points {
		sum = sum.Add(p)
	}

	return sum.DivByConstant(float64(len(points)))
}
