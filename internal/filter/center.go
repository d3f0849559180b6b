package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/geometry"
)

type CenterMode int

const (
	// fixed (0,0,0) center
	CenterOrigin CenterMode = iota
	// centroid of the filtered point set
	CenterCentroid
	// caller supplied coordinate triple
	CenterExplicit
)

// Center describes where the filter region is anchored
type Center struct {
	Mode  CenterMode
	Coord vector3.Float64
}

// Resolve turns the center description into an absolute coordinate for the
// given point set.
func (c Center) Resolve(points []vector3.Float64) vector3.Float64 {
	switch c.Mode {
	case CenterCentroid:
		return geometry.Centroid(points)
	case CenterExplicit:
		return c.Coord
	default:
		return vector3.Zero[float64]()
	}
}

// Filename token describing the center, matching the output naming policy
func (c Center) Token() string {
	switch c.Mode {
	case CenterCentroid:
		return "geometric"
	case CenterExplicit:
		return fmt.Sprintf("%.1f_%.1f_%.1f", c.Coord.X(), c.Coord.Y(), c.Coord.Z())
	default:
		return "origin"
	}
}

// ParseCenter parses a filter center specification. Accepted forms are
// "origin", "geometric" (alias "centroid") and a coordinate triple given
// either comma or space separated.
func ParseCenter(s string) (Center, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "", "origin":
		return Center{Mode: CenterOrigin}, nil
	case "geometric", "centroid":
		return Center{Mode: CenterCentroid}, nil
	}

	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}

	if len(parts) != 3 {
		return Center{}, fmt.Errorf(
			"invalid center format %q: expected 'origin', 'geometric' or three numbers", s)
	}

	var coord [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Center{}, fmt.Errorf("invalid center coordinates %q: all three values must be numbers", s)
		}
		coord[i] = v
	}

	return Center{
		Mode:  CenterExplicit,
		Coord: vector3.New(coord[0], coord[1], coord[2]),
	}, nil
}
