package sampler

import (
	"math"

	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/geometry"
)

const (
	// relative tolerance on the occupied voxel count vs the target
	calibrationTolerance = 0.05
	// hard cap on bisection steps, the best midpoint so far is returned
	// when it is exhausted
	calibrationMaxIterations = 50
)

// Finds a voxel edge length whose occupied voxel count lands within the
// calibration tolerance of target. The search is a plain bisection: larger
// voxels hold more points each and therefore produce fewer occupied
// voxels, so a count above target moves the lower bound up towards larger
// edge lengths. Convergence is not guaranteed for pathological point
// distributions; after the iteration budget the last midpoint is returned
// as the best available estimate.
func calibrateVoxelSize(points []vector3.Float64, target int) float64 {
	diagonal := geometry.NewBoundingBoxFromPoints(points).Diagonal()

	vmin := diagonal / (math.Cbrt(float64(target)) * 10)
	vmax := diagonal / 2

	vmid := (vmin + vmax) / 2
	for i := 0; i < calibrationMaxIterations; i++ {
		vmid = (vmin + vmax) / 2
		count := countOccupiedVoxels(points, vmid)

		if math.Abs(float64(count-target))/float64(target) <= calibrationTolerance {
			return vmid
		}

		if count > target {
			vmin = vmid
		} else {
			vmax = vmid
		}
	}

	return vmid
}
