// Package conv defines the options shared between the command line
// frontend and the conversion pipeline, plus the parsing helpers for the
// human-facing value formats (byte sizes, percentages).
package conv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/landate83/gopointpack/internal/converters"
	"github.com/landate83/gopointpack/internal/filter"
)

const (
	// gltfpack position quantization bits when none are requested
	DefaultMeshoptBits = 16
)

// Contains the options needed for the conversion pipeline
type Options struct {
	Input  string // Input PLY/SOG file or folder
	Output string // Output file; empty derives the name from the input and the options

	Points  int             // Downsampling target as an absolute point count
	Percent decimal.Decimal // Downsampling target as a percentage of the input points
	Size    string          // Downsampling target as a byte budget ("500kb", "10mb", bare numbers are kb)

	FilterShape  filter.Shape  // Region filter shape; empty disables filtering
	FilterRadius float64       // Filter radius as a fraction of the bounding box diagonal
	FilterCenter filter.Center // How the filter center is resolved

	Draco         bool // Compress geometry through the external draco_encoder tool
	Meshopt       bool // Compress the container through gltfpack
	Quantize      bool // Pack positions as normalized int16
	QuantExplicit bool // Quantization was asked for on the command line rather than implied by meshopt
	MeshoptBits   int  // Position bits handed to gltfpack -vp

	Transform converters.AxisTransform // Axis convention fixup applied before export

	FolderProcessing bool // Enables the processing of all input files in a folder
	Recursive        bool // Recursive lookup of input files in subfolders
	Silent           bool // Suppress all the non-error messages
	LogTimestamp     bool // Adds timestamp to log messages

	Command string
}

// HasTarget reports whether any downsampling target was requested
func (opt *Options) HasTarget() bool {
	return opt.Points > 0 || opt.Size != "" || !opt.Percent.IsZero()
}

func (opt *Options) Copy() *Options {
	newOpt := *opt
	return &newOpt
}

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	// longest suffixes first so "kb" never matches the trailing "b"
	{"kb", 1024},
	{"mb", 1024 * 1024},
	{"gb", 1024 * 1024 * 1024},
	{"b", 1},
}

// ParseByteSize converts a size string with an optional b/kb/mb/gb suffix
// to bytes. A bare number is read as kilobytes.
func ParseByteSize(value string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1024)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s = strings.TrimSuffix(s, unit.suffix)
			multiplier = unit.multiplier
			break
		}
	}

	number, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	if number.Sign() <= 0 {
		return 0, fmt.Errorf("size must be positive: %s", value)
	}

	return int(number.Mul(decimal.NewFromInt(multiplier)).IntPart()), nil
}

// ParsePercent reads a percentage in the (0, 100] range
func ParsePercent(value string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid percent: %s", value)
	}
	if p.Sign() <= 0 || p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Decimal{}, fmt.Errorf("percent must be in (0, 100]: %s", value)
	}
	return p, nil
}

// PercentOf scales a point count by a percentage, never below one point
func PercentOf(count int, percent decimal.Decimal) int {
	n := int(percent.Mul(decimal.NewFromInt(int64(count))).Div(decimal.NewFromInt(100)).IntPart())
	if n < 1 {
		n = 1
	}
	return n
}

// FormatFileSize renders a byte count in a human readable unit
func FormatFileSize(sizeBytes int) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f TB", size)
}

// FormatPointCount renders a point count with space separated thousands
func FormatPointCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
