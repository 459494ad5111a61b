package footprint

import (
	"fmt"
	"math"
	"strconv"

	"github.com/earthdata-tools/aster2tif/internal/aster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// InvalidGeometryError is returned when the corners do not describe a valid footprint.
type InvalidGeometryError struct {
	Reason string
	Err    error
}

func (e *InvalidGeometryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid footprint: %s: %v", e.Reason, e.Err)
	}
	return "invalid footprint: " + e.Reason
}

func (e *InvalidGeometryError) Unwrap() error {
	return e.Err
}

// Footprint is the scene outline in (lon, lat) order: UL, UR, LR, LL and
// the closing vertex.
type Footprint struct {
	Ring orb.Ring
}

// UpperLeft returns the UL vertex as (lon, lat).
func (f Footprint) UpperLeft() orb.Point {
	return f.Ring[0]
}

// Corners returns UL, UR, LR, LL without the closing vertex.
func (f Footprint) Corners() [4]orb.Point {
	var c [4]orb.Point
	copy(c[:], f.Ring[:4])
	return c
}

// Build turns the raw (lat, lon) corner attributes into a closed footprint ring.
func Build(corners [4]aster.RawCorner) (Footprint, error) {
	ring := make(orb.Ring, 0, 5)
	for i, c := range corners {
		lat, err := strconv.ParseFloat(c.First, 64)
		if err != nil {
			return Footprint{}, &InvalidGeometryError{Reason: "latitude of " + aster.CornerKeys[i], Err: err}
		}
		lon, err := strconv.ParseFloat(c.Second, 64)
		if err != nil {
			return Footprint{}, &InvalidGeometryError{Reason: "longitude of " + aster.CornerKeys[i], Err: err}
		}
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return Footprint{}, &InvalidGeometryError{Reason: fmt.Sprintf("latitude %v of %s out of range", lat, aster.CornerKeys[i])}
		}
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return Footprint{}, &InvalidGeometryError{Reason: fmt.Sprintf("longitude %v of %s out of range", lon, aster.CornerKeys[i])}
		}
		// stored as lat,lon; geometry is lon,lat
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0])

	if err := validate(unwrap(ring)); err != nil {
		return Footprint{}, err
	}
	return Footprint{Ring: ring}, nil
}

// unwrap moves every longitude to within 180 degrees of the first vertex so
// that a ring crossing the antimeridian is continuous.
func unwrap(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, len(ring))
	ref := ring[0][0]
	for i, p := range ring {
		lon := p[0]
		for lon-ref > 180 {
			lon -= 360
		}
		for ref-lon > 180 {
			lon += 360
		}
		out[i] = orb.Point{lon, p[1]}
	}
	return out
}

func validate(ring orb.Ring) error {
	if !ring.Closed() {
		return &InvalidGeometryError{Reason: "ring is not closed"}
	}
	if planar.Area(ring) == 0 {
		return &InvalidGeometryError{Reason: "ring has zero area"}
	}
	if selfIntersects(ring) {
		return &InvalidGeometryError{Reason: "ring self-intersects"}
	}
	return nil
}

// selfIntersects reports whether any two non-adjacent edges of the closed
// ring touch.
func selfIntersects(ring orb.Ring) bool {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
