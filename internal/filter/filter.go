// Package filter restricts a point cloud to a spherical or hemispherical
// region before downsampling. Radii are expressed as a fraction of the
// bounding box diagonal so the same flag values work across captures of
// very different scale.
package filter

import (
	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/data"
	"github.com/landate83/gopointpack/internal/geometry"
)

type Shape string

const (
	Sphere     Shape = "sphere"
	Hemisphere Shape = "hemisphere"
)

// Spec describes a region crop. RadiusFraction is relative to the bounding
// box diagonal and may exceed 1.0; a zero radius legally selects nothing.
type Spec struct {
	Shape          Shape
	RadiusFraction float64
	Center         Center
}

// Stats reports what a filter application actually did
type Stats struct {
	Center       vector3.Float64
	Radius       float64
	PointsBefore int
	PointsAfter  int
}

// Apply returns a fresh PointCloud holding the points of cloud that fall
// inside the region, preserving their relative order. The hemisphere keeps
// the non negative half along the +Y up axis relative to the center.
func Apply(cloud *data.PointCloud, spec Spec) (*data.PointCloud, *Stats) {
	center := spec.Center.Resolve(cloud.Positions)

	box := geometry.NewBoundingBoxFromPoints(cloud.Positions)
	radius := spec.RadiusFraction * box.Diagonal()
	radiusSq := radius * radius

	out := data.NewEmptyPointCloud(cloud.Len())
	for i, p := range cloud.Positions {
		d := p.Sub(center)
		// squared distance comparison, no need for the square root
		if d.Dot(d) > radiusSq {
			continue
		}
		if spec.Shape == Hemisphere && p.Y() < center.Y() {
			continue
		}
		out.Append(p, cloud.Colors[i])
	}

	return out, &Stats{
		Center:       center,
		Radius:       radius,
		PointsBefore: cloud.Len(),
		PointsAfter:  out.Len(),
	}
}
