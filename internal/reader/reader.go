// Package reader parses point cloud files into the in-memory PointCloud
// representation. Supported sources are PLY vertex files (ascii or binary,
// optionally wrapped in a ZIP archive) and SOG archives as produced by
// gaussian splatting pipelines.
package reader

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/landate83/gopointpack/internal/data"
)

// Zeroth order real spherical harmonic basis value, used to turn the DC
// coefficients of splat files into displayable RGB. Must not be rounded.
const shC0 = 0.28209479177387814

// ReadPointCloud reads the point cloud stored at path, selecting the
// parser from the file extension.
func ReadPointCloud(path string) (*data.PointCloud, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ply":
		return ReadPly(path)
	case ".sog":
		return ReadSog(path)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// Decodes a spherical harmonics DC coefficient into an 8 bit channel value
func shToChannel(f float64) uint8 {
	v := math.Round((0.5 + shC0*f) * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamps an arbitrary numeric property into an 8 bit channel value
func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
