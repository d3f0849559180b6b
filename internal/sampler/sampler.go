package sampler

import (
	"fmt"
	"sort"

	"github.com/landate83/gopointpack/internal/data"
	"golang.org/x/exp/maps"
)

// InvalidTargetError signals that no usable downsampling target could be
// resolved from the caller's request.
type InvalidTargetError struct {
	Count  int
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid downsampling target %d: %s", e.Count, e.Reason)
}

// Target describes how far to reduce a point cloud. Exactly one of Count
// and SizeBytes must be set; Format and Draco feed the size model when the
// target is a byte budget.
type Target struct {
	Count     int
	SizeBytes int
	Format    OutputFormat
	Draco     bool
}

// DownsampleToTarget reduces cloud to approximately the requested number
// of points. The result is a fresh PointCloud whose points are untouched
// copies of input points; when the target is not smaller than the input
// the input is returned unchanged.
func DownsampleToTarget(cloud *data.PointCloud, target Target) (*data.PointCloud, error) {
	count := target.Count
	if count == 0 && target.SizeBytes > 0 {
		count = TargetPointsForSize(target.SizeBytes, target.Format, target.Draco)
	}

	if count == 0 {
		return nil, &InvalidTargetError{Count: count, Reason: "specify a point count or a byte size"}
	}
	if count < 0 {
		return nil, &InvalidTargetError{Count: count, Reason: "target must be positive"}
	}

	if count >= cloud.Len() {
		return cloud, nil
	}

	// all points identical: a single voxel no matter the resolution, so
	// skip the calibration and its division by the zero diagonal
	if degenerate(cloud) {
		out := data.NewEmptyPointCloud(1)
		out.Append(cloud.Positions[0], cloud.Colors[0])
		return out, nil
	}

	voxelSize := calibrateVoxelSize(cloud.Positions, count)
	return downsampleVoxelGridNearest(cloud, voxelSize), nil
}

func degenerate(cloud *data.PointCloud) bool {
	first := cloud.Positions[0]
	for _, p := range cloud.Positions[1:] {
		if p != first {
			return false
		}
	}
	return true
}

// Picks one representative per occupied voxel: the original member point
// nearest the voxel's local centroid, ties resolved in favor of the first
// encountered point. Voxels are emitted in row major key order so the
// output is deterministic for a given input and voxel size.
func downsampleVoxelGridNearest(cloud *data.PointCloud, voxelSize float64) *data.PointCloud {
	buckets := make(map[voxelKey][]int)
	for i, p := range cloud.Positions {
		key := pointToKey(p, voxelSize)
		buckets[key] = append(buckets[key], i)
	}

	keys := maps.Keys(buckets)
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := data.NewEmptyPointCloud(len(keys))
	for _, key := range keys {
		members := buckets[key]

		centroid := cloud.Positions[members[0]]
		if len(members) > 1 {
			sum := cloud.Positions[members[0]]
			for _, idx := range members[1:] {
				sum = sum.Add(cloud.Positions[idx])
			}
			centroid = sum.DivByConstant(float64(len(members)))
		}

		best := members[0]
		bestDist := cloud.Positions[best].Sub(centroid).Length()
		for _, idx := range members[1:] {
			if d := cloud.Positions[idx].Sub(centroid).Length(); d < bestDist {
				best = idx
				bestDist = d
			}
		}

		out.Append(cloud.Positions[best], cloud.Colors[best])
	}

	return out
}
