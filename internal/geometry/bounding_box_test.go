package geometry

import (
	"math"
	"testing"

	"github.com/EliCDavis/vector/vector3"
	"github.com/stretchr/testify/assert"
)

func TestNewBoundingBoxFromPoints(t *testing.T) {
	t.Parallel()

	points := []vector3.Float64{
		vector3.New(1.0, -2.0, 3.0),
		vector3.New(-4.0, 5.0, 0.0),
		vector3.New(0.0, 0.0, -6.0),
	}

	box := NewBoundingBoxFromPoints(points)
	assert.Equal(t, vector3.New(-4.0, -2.0, -6.0), box.Min())
	assert.Equal(t, vector3.New(1.0, 5.0, 3.0), box.Max())
}

func TestDiagonal(t *testing.T) {
	t.Parallel()

	box := NewBoundingBox(0, 1, 0, 1, 0, 1)
	assert.InDelta(t, math.Sqrt(3), box.Diagonal(), 1e-12)

	flat := NewBoundingBox(0, 0, 0, 0, 0, 0)
	assert.Equal(t, 0.0, flat.Diagonal())
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	points := []vector3.Float64{
		vector3.New(0.0, 0.0, 0.0),
		vector3.New(2.0, 4.0, 6.0),
	}
	assert.Equal(t, vector3.New(1.0, 2.0, 3.0), Centroid(points))

	// empty input yields the origin
	assert.Equal(t, vector3.Zero[float64](), Centroid(nil))
}
