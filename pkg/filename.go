package pkg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/landate83/gopointpack/internal/conv"
	"github.com/landate83/gopointpack/internal/filter"
)

// GenerateOutputFilename derives an output path next to the input file,
// encoding the conversion parameters into the name:
//
//	<stem>[_filtersphere|_filterhemisphere][_rNNNN][_center_<token>]
//	      [_prcnt_N|_size_<value>|_pnts_N][_draco|_meshopt][_quant].glb
//
// The filter radius is written as a four digit percentage of the bounding
// box diagonal (0.5 -> r0050). The origin center is the default and stays
// out of the name. _quant appears only when quantization was asked for
// explicitly, not when meshopt implied it.
func GenerateOutputFilename(inputPath string, opts *conv.Options) string {
	dir := filepath.Dir(inputPath)
	stem := strings.TrimRight(getFilenameWithoutExtension(inputPath), "_")

	parts := []string{stem}

	if opts.FilterShape != "" {
		parts = append(parts, "_filter"+string(opts.FilterShape))
		if opts.FilterRadius > 0 {
			parts = append(parts, fmt.Sprintf("_r%04d", int(opts.FilterRadius*100)))
		}
		if opts.FilterCenter.Mode != filter.CenterOrigin {
			parts = append(parts, "_center_"+opts.FilterCenter.Token())
		}
	}

	switch {
	case !opts.Percent.IsZero():
		parts = append(parts, percentToken(opts.Percent))
	case opts.Size != "":
		normalized := strings.ReplaceAll(strings.ToLower(opts.Size), " ", "")
		parts = append(parts, "_size_"+normalized)
	case opts.Points > 0:
		parts = append(parts, fmt.Sprintf("_pnts_%d", opts.Points))
	}

	if opts.Draco {
		parts = append(parts, "_draco")
	} else if opts.Meshopt {
		parts = append(parts, "_meshopt")
	}

	if opts.QuantExplicit {
		parts = append(parts, "_quant")
	}

	return filepath.Join(dir, strings.Join(parts, "")+".glb")
}

// Whole percentages stay bare, fractional ones carry their first decimal
// digit in parentheses: 5 -> _prcnt_5, 5.5 -> _prcnt_5(5).
func percentToken(percent decimal.Decimal) string {
	intPart := percent.IntPart()
	frac := percent.Sub(decimal.NewFromInt(intPart))
	if frac.IsZero() {
		return fmt.Sprintf("_prcnt_%d", intPart)
	}

	digit := frac.Mul(decimal.NewFromInt(10)).IntPart()
	return fmt.Sprintf("_prcnt_%d(%d)", intPart, digit)
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}
