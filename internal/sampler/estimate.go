package sampler

import "math"

// Output container kind used by the size model
type OutputFormat string

const (
	FormatGLB OutputFormat = "glb"
	FormatDRC OutputFormat = "drc"
)

// Empirical compressed-bytes-per-point ratios measured on real exports.
// The GLB constant assumes quantized SHORT positions plus byte colors.
const (
	bytesPerPointDrc      = 6.5
	bytesPerPointGlbDraco = 5.7
	bytesPerPointGlb      = 9.0
	// plain GLB first guess for the inverse problem, float positions
	bytesPerPointGlbRaw = 24.0

	overheadGlb = 3000
	overheadDrc = 100
)

// EstimateFileSize predicts the output size in bytes for a point count
func EstimateFileSize(pointCount int, format OutputFormat, draco bool) int {
	var bytesPerPoint float64
	var overhead int

	switch {
	case format == FormatDRC:
		bytesPerPoint = bytesPerPointDrc
		overhead = overheadDrc
	case draco:
		bytesPerPoint = bytesPerPointGlbDraco
		overhead = overheadGlb
	default:
		bytesPerPoint = bytesPerPointGlb
		overhead = overheadGlb
	}

	return int(float64(pointCount)*bytesPerPoint) + overhead
}

// TargetPointsForSize inverts the size model: how many points fit in the
// given byte budget. The initial guess is refined a few times against the
// forward estimator to absorb the fixed overhead.
func TargetPointsForSize(targetSizeBytes int, format OutputFormat, draco bool) int {
	overhead := overheadGlb
	if format == FormatDRC {
		overhead = overheadDrc
	}

	var bytesPerPoint float64
	switch {
	case format == FormatDRC:
		bytesPerPoint = bytesPerPointDrc
	case draco:
		bytesPerPoint = bytesPerPointGlbDraco
	default:
		bytesPerPoint = bytesPerPointGlbRaw
	}

	available := targetSizeBytes - overhead
	if available < 1 {
		available = 1
	}
	estimate := int(float64(available) / bytesPerPoint)

	for i := 0; i < 5; i++ {
		predicted := EstimateFileSize(estimate, format, draco)
		if predicted == 0 {
			break
		}

		ratio := float64(targetSizeBytes) / float64(predicted)
		estimate = int(float64(estimate) * ratio)

		if math.Abs(float64(predicted-targetSizeBytes))/float64(targetSizeBytes) < 0.01 {
			break
		}
	}

	if estimate < 1 {
		return 1
	}
	return estimate
}
