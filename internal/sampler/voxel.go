// Package sampler reduces a point cloud to approximately a requested
// number of points. Points are bucketed into a uniform voxel grid and each
// occupied voxel keeps the single original point closest to the voxel's
// local centroid, so output coordinates and colors are always copies of
// sampled data, never averages.
package sampler

import (
	"math"

	"github.com/EliCDavis/vector/vector3"
	mapset "github.com/deckarep/golang-set/v2"
)

// Integer grid cell coordinate of a point at a given voxel edge length.
// Keys only live for the duration of one downsampling call.
type voxelKey struct {
	X int64
	Y int64
	Z int64
}

// Converts a point to its voxel key by flooring each coordinate at the
// given resolution.
func pointToKey(p vector3.Float64, voxelSize float64) voxelKey {
	return voxelKey{
		X: int64(math.Floor(p.X() / voxelSize)),
		Y: int64(math.Floor(p.Y() / voxelSize)),
		Z: int64(math.Floor(p.Z() / voxelSize)),
	}
}

// Row major ordering over the three integer axes, which linearizes voxel
// keys deterministically regardless of map iteration order.
func keyLess(a, b voxelKey) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// Counts the voxels occupied by at least one point at the given resolution
func countOccupiedVoxels(points []vector3.Float64, voxelSize float64) int {
	occupied := mapset.NewThreadUnsafeSet[voxelKey]()
	for _, p := range points {
		occupied.Add(pointToKey(p, voxelSize))
	}
	return occupied.Cardinality()
}
