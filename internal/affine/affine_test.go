package affine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOriginKeepsOriginUnderRotation(t *testing.T) {
	const west, north = 254839.71, 3877279.56
	for _, angle := range []float64{0, 12, -8.5, 90, 183} {
		tr := FromOrigin(west, north, 15, 15).Multiply(Rotation(angle))
		x, y := tr.Apply(0, 0)
		assert.Equal(t, west, x, "angle %v", angle)
		assert.Equal(t, north, y, "angle %v", angle)
	}
}

func TestFromOriginNorthUp(t *testing.T) {
	tr := FromOrigin(100, 200, 30, 30)
	assert.Equal(t, [6]float64{100, 30, 0, 200, 0, -30}, tr.GDAL())

	x, y := tr.Apply(2, 3)
	assert.Equal(t, 160.0, x)
	assert.Equal(t, 110.0, y)
}

func TestRotationComposedAroundOrigin(t *testing.T) {
	tr := FromOrigin(1000, 5000, 15, 15).Multiply(Rotation(12))
	c, s := math.Cos(12*math.Pi/180), math.Sin(12*math.Pi/180)

	gt := tr.GDAL()
	assert.InDelta(t, 1000, gt[0], 1e-9)
	assert.InDelta(t, 15*c, gt[1], 1e-9)
	assert.InDelta(t, -15*s, gt[2], 1e-9)
	assert.InDelta(t, 5000, gt[3], 1e-9)
	assert.InDelta(t, -15*s, gt[4], 1e-9)
	assert.InDelta(t, -15*c, gt[5], 1e-9)

	// one pixel along the first row moves 15 m in the rotated direction
	x, y := tr.Apply(1, 0)
	assert.InDelta(t, 15, math.Hypot(x-1000, y-5000), 1e-9)

	rx, ry := tr.Resolution()
	assert.InDelta(t, 15, rx, 1e-9)
	assert.InDelta(t, 15, ry, 1e-9)
}

func TestRotationQuarterTurnsAreExact(t *testing.T) {
	assert.Equal(t, Affine{A: 0, B: -1, D: 1, E: 0}, Rotation(90))
	assert.Equal(t, Affine{A: -1, B: 0, D: 0, E: -1}, Rotation(-180))
	assert.Equal(t, Identity(), Rotation(360))
}

func TestGDALRoundTrip(t *testing.T) {
	gt := [6]float64{500000, 15, 1.5, 4000000, -1.5, -15}
	assert.Equal(t, gt, FromGDAL(gt).GDAL())
}

func TestInvert(t *testing.T) {
	tr := FromOrigin(1000, 5000, 90, 90).Multiply(Rotation(-7))
	inv, err := tr.Invert()
	require.NoError(t, err)

	x, y := tr.Apply(12, 34)
	col, row := inv.Apply(x, y)
	assert.InDelta(t, 12, col, 1e-9)
	assert.InDelta(t, 34, row, 1e-9)

	_, err = Scale(0, 1).Invert()
	assert.Error(t, err)
}
