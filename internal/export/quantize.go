package export

import (
	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/geometry"
)

const (
	shortMin   = -32768
	shortMax   = 32767
	shortRange = shortMax - shortMin
)

// quantizePositions maps each axis onto the full int16 range. The returned
// offset and scale recover the original coordinate as q*scale + offset, so
// a viewer can dequantize without knowing the bounding box. Degenerate axes
// get a unit range to avoid dividing by zero.
func quantizePositions(positions []vector3.Float64) ([]int16, [3]float64, [3]float64) {
	box := geometry.NewBoundingBoxFromPoints(positions)
	mins := [3]float64{box.Xmin, box.Ymin, box.Zmin}
	maxs := [3]float64{box.Xmax, box.Ymax, box.Zmax}

	var offset, scale [3]float64
	for axis := range scale {
		r := maxs[axis] - mins[axis]
		if r < 1e-6 {
			r = 1.0
		}
		scale[axis] = r / shortRange
		offset[axis] = mins[axis] - shortMin*scale[axis]
	}

	quantized := make([]int16, 0, len(positions)*3)
	for _, p := range positions {
		for axis, v := range [3]float64{p.X(), p.Y(), p.Z()} {
			q := (v - offset[axis]) / scale[axis]
			if q < shortMin {
				q = shortMin
			}
			if q > shortMax {
				q = shortMax
			}
			quantized = append(quantized, int16(q))
		}
	}

	return quantized, offset, scale
}
