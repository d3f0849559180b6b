package filter

import (
	"testing"

	"github.com/EliCDavis/vector/vector3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landate83/gopointpack/internal/data"
)

// unit cube corners plus the origin, diagonal sqrt(3)
func cornerCloud() *data.PointCloud {
	positions := []vector3.Float64{
		vector3.New(0.0, 0.0, 0.0),
		vector3.New(1.0, 0.0, 0.0),
		vector3.New(0.0, 1.0, 0.0),
		vector3.New(0.0, 0.0, 1.0),
		vector3.New(1.0, 1.0, 1.0),
	}
	colors := make([]data.RGB, len(positions))
	for i := range colors {
		colors[i] = data.RGB{R: uint8(i), G: uint8(i), B: uint8(i)}
	}
	return data.NewPointCloud(positions, colors)
}

func TestApply_SphereKeepsPointsWithinRadius(t *testing.T) {
	t.Parallel()

	cloud := cornerCloud()
	// radius = 0.6 * sqrt(3) ~ 1.039: keeps origin and the three unit
	// corners, drops (1,1,1) at distance sqrt(3)
	out, stats := Apply(cloud, Spec{
		Shape:          Sphere,
		RadiusFraction: 0.6,
		Center:         Center{Mode: CenterOrigin},
	})

	require.Equal(t, 4, out.Len())
	assert.Equal(t, 5, stats.PointsBefore)
	assert.Equal(t, 4, stats.PointsAfter)
	assert.InDelta(t, 1.039, stats.Radius, 0.001)

	// relative order and colors of kept points survive
	assert.Equal(t, uint8(0), out.Colors[0].R)
	assert.Equal(t, uint8(1), out.Colors[1].R)
}

func TestApply_ZeroRadiusAtOriginKeepsOnlyOrigin(t *testing.T) {
	t.Parallel()

	out, _ := Apply(cornerCloud(), Spec{
		Shape:          Sphere,
		RadiusFraction: 0,
		Center:         Center{Mode: CenterOrigin},
	})

	// zero radius legally selects the points at distance exactly zero
	require.Equal(t, 1, out.Len())
	assert.Equal(t, vector3.New(0.0, 0.0, 0.0), out.Positions[0])
}

func TestApply_HemisphereDropsPointsBelowCenter(t *testing.T) {
	t.Parallel()

	positions := []vector3.Float64{
		vector3.New(0.0, 1.0, 0.0),
		vector3.New(0.0, -1.0, 0.0),
		vector3.New(0.5, 0.0, 0.0),
	}
	colors := make([]data.RGB, len(positions))
	cloud := data.NewPointCloud(positions, colors)

	out, _ := Apply(cloud, Spec{
		Shape:          Hemisphere,
		RadiusFraction: 2.0,
		Center:         Center{Mode: CenterOrigin},
	})

	require.Equal(t, 2, out.Len())
	for _, p := range out.Positions {
		assert.GreaterOrEqual(t, p.Y(), 0.0)
	}
}

func TestApply_ExplicitCenter(t *testing.T) {
	t.Parallel()

	out, stats := Apply(cornerCloud(), Spec{
		Shape:          Sphere,
		RadiusFraction: 0.1,
		Center:         Center{Mode: CenterExplicit, Coord: vector3.New(1.0, 1.0, 1.0)},
	})

	require.Equal(t, 1, out.Len())
	assert.Equal(t, vector3.New(1.0, 1.0, 1.0), out.Positions[0])
	assert.Equal(t, vector3.New(1.0, 1.0, 1.0), stats.Center)
}

func TestApply_CentroidCenter(t *testing.T) {
	t.Parallel()

	_, stats := Apply(cornerCloud(), Spec{
		Shape:          Sphere,
		RadiusFraction: 1.0,
		Center:         Center{Mode: CenterCentroid},
	})

	assert.InDelta(t, 0.4, stats.Center.X(), 1e-9)
	assert.InDelta(t, 0.4, stats.Center.Y(), 1e-9)
	assert.InDelta(t, 0.4, stats.Center.Z(), 1e-9)
}

func TestParseCenter(t *testing.T) {
	t.Parallel()

	t.Run("origin", func(t *testing.T) {
		t.Parallel()
		c, err := ParseCenter("origin")
		require.NoError(t, err)
		assert.Equal(t, CenterOrigin, c.Mode)
	})

	t.Run("empty defaults to origin", func(t *testing.T) {
		t.Parallel()
		c, err := ParseCenter("")
		require.NoError(t, err)
		assert.Equal(t, CenterOrigin, c.Mode)
	})

	t.Run("geometric and alias", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"geometric", "centroid", "GEOMETRIC"} {
			c, err := ParseCenter(s)
			require.NoError(t, err)
			assert.Equal(t, CenterCentroid, c.Mode)
		}
	})

	t.Run("comma separated triple", func(t *testing.T) {
		t.Parallel()
		c, err := ParseCenter("1.0,2.0,-3.5")
		require.NoError(t, err)
		assert.Equal(t, CenterExplicit, c.Mode)
		assert.Equal(t, vector3.New(1.0, 2.0, -3.5), c.Coord)
	})

	t.Run("space separated triple", func(t *testing.T) {
		t.Parallel()
		c, err := ParseCenter("1 2 3")
		require.NoError(t, err)
		assert.Equal(t, vector3.New(1.0, 2.0, 3.0), c.Coord)
	})

	t.Run("wrong arity", func(t *testing.T) {
		t.Parallel()
		_, err := ParseCenter("1,2")
		assert.Error(t, err)
	})

	t.Run("non numeric", func(t *testing.T) {
		t.Parallel()
		_, err := ParseCenter("a,b,c")
		assert.Error(t, err)
	})
}

func TestCenterToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "origin", Center{Mode: CenterOrigin}.Token())
	assert.Equal(t, "geometric", Center{Mode: CenterCentroid}.Token())
	assert.Equal(t, "1.5_-2.0_3.0",
		Center{Mode: CenterExplicit, Coord: vector3.New(1.5, -2.0, 3.0)}.Token())
}
