package affine

import (
	"fmt"
	"math"
)

// Affine maps pixel/line to map coordinates:
//
//	x' = A*col + B*row + C
//	y' = D*col + E*row + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, E: 1}
}

func Translation(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

func Scale(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Rotation is a counter-clockwise rotation by angle degrees about the
// origin of the coordinate system it is composed into.
func Rotation(angle float64) Affine {
	c, s := cosSinDeg(angle)
	return Affine{A: c, B: -s, D: s, E: c}
}

// FromOrigin builds a north-up transform whose pixel (0,0) corner sits at
// (west, north), with square or rectangular pixels of xsize by ysize.
func FromOrigin(west, north, xsize, ysize float64) Affine {
	return Translation(west, north).Multiply(Scale(xsize, -ysize))
}

// FromGDAL converts a GDAL geotransform.
func FromGDAL(gt [6]float64) Affine {
	return Affine{A: gt[1], B: gt[2], C: gt[0], D: gt[4], E: gt[5], F: gt[3]}
}

// GDAL returns the transform in GDAL geotransform order.
func (a Affine) GDAL() [6]float64 {
	return [6]float64{a.C, a.A, a.B, a.F, a.D, a.E}
}

// Multiply returns a*o, the transform applying o first and then a.
func (a Affine) Multiply(o Affine) Affine {
	return Affine{
		A: a.A*o.A + a.B*o.D,
		B: a.A*o.B + a.B*o.E,
		C: a.A*o.C + a.B*o.F + a.C,
		D: a.D*o.A + a.E*o.D,
		E: a.D*o.B + a.E*o.E,
		F: a.D*o.C + a.E*o.F + a.F,
	}
}

// Apply maps (col, row) through the transform.
func (a Affine) Apply(col, row float64) (float64, float64) {
	return col*a.A + row*a.B + a.C, col*a.D + row*a.E + a.F
}

func (a Affine) Determinant() float64 {
	return a.A*a.E - a.B*a.D
}

// Invert returns the inverse transform. It fails for degenerate transforms.
func (a Affine) Invert() (Affine, error) {
	det := a.Determinant()
	if det == 0 {
		return Affine{}, fmt.Errorf("affine transform %v is not invertible", a)
	}
	inv := 1 / det
	A := a.E * inv
	B := -a.B * inv
	D := -a.D * inv
	E := a.A * inv
	return Affine{
		A: A,
		B: B,
		C: -a.C*A - a.F*B,
		D: D,
		E: E,
		F: -a.C*D - a.F*E,
	}, nil
}

// Resolution is the length of a pixel side along each image axis.
func (a Affine) Resolution() (float64, float64) {
	return math.Hypot(a.A, a.D), math.Hypot(a.B, a.E)
}

func (a Affine) String() string {
	return fmt.Sprintf("Affine(%v, %v, %v,\n       %v, %v, %v)", a.A, a.B, a.C, a.D, a.E, a.F)
}

// cosSinDeg snaps the quarter turns so that rotations by multiples of 90
// degrees stay exact.
func cosSinDeg(deg float64) (float64, float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
