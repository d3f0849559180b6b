// Package converters holds the coordinate conversions applied to points on
// their way into the output container. Viewers disagree on axis
// conventions (Y up vs Z up, handedness), so the exporter can apply a sign
// flip or an axis swap to every position before packing.
package converters

import (
	"fmt"
	"strings"

	"github.com/EliCDavis/vector/vector3"
)

type AxisTransform string

const (
	TransformNone      AxisTransform = "none"
	TransformNegX      AxisTransform = "neg_x"
	TransformNegY      AxisTransform = "neg_y"
	TransformNegZ      AxisTransform = "neg_z"
	TransformSwapYZ    AxisTransform = "swap_yz"
	TransformSwapYZNYA AxisTransform = "swap_yz_neg_y"
	TransformSwapYZNZA AxisTransform = "swap_yz_neg_z"
)

// ParseAxisTransform validates a transform name from the command line
func ParseAxisTransform(value string) (AxisTransform, error) {
	t := AxisTransform(strings.ToLower(strings.TrimSpace(value)))
	switch t {
	case "", TransformNone:
		return TransformNone, nil
	case TransformNegX, TransformNegY, TransformNegZ,
		TransformSwapYZ, TransformSwapYZNYA, TransformSwapYZNZA:
		return t, nil
	}
	return "", fmt.Errorf("unknown transform: %s", value)
}

// Apply transforms a single coordinate
func (t AxisTransform) Apply(p vector3.Float64) vector3.Float64 {
	switch t {
	case TransformNegX:
		return vector3.New(-p.X(), p.Y(), p.Z())
	case TransformNegY:
		return vector3.New(p.X(), -p.Y(), p.Z())
	case TransformNegZ:
		return vector3.New(p.X(), p.Y(), -p.Z())
	case TransformSwapYZ:
		return vector3.New(p.X(), p.Z(), p.Y())
	case TransformSwapYZNYA:
		return vector3.New(p.X(), -p.Z(), p.Y())
	case TransformSwapYZNZA:
		return vector3.New(p.X(), p.Z(), -p.Y())
	default:
		return p
	}
}

// ApplyAll transforms every position into a fresh slice; the identity
// transform returns the input untouched.
func (t AxisTransform) ApplyAll(points []vector3.Float64) []vector3.Float64 {
	if t == TransformNone || t == "" {
		return points
	}

	out := make([]vector3.Float64, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}
