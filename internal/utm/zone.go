package utm

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	zoneWidth = 6.0
	numZones  = 60

	epsgNorthBase = 32600
	epsgSouthBase = 32700
)

// ZoneResolutionError is returned when no zone can be derived from a bound.
type ZoneResolutionError struct {
	Bound  orb.Bound
	Reason string
}

func (e *ZoneResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve UTM zone for bound %v-%v: %s", e.Bound.Min, e.Bound.Max, e.Reason)
}

// Zone is a WGS 84 / UTM zone.
type Zone struct {
	Number int
	North  bool
}

// EPSG returns the authority code, 326zz for the north and 327zz for the south.
func (z Zone) EPSG() int {
	if z.North {
		return epsgNorthBase + z.Number
	}
	return epsgSouthBase + z.Number
}

// CentralMeridian of the zone in degrees.
func (z Zone) CentralMeridian() float64 {
	return float64(z.Number)*zoneWidth - 183
}

func (z Zone) String() string {
	h := "S"
	if z.North {
		h = "N"
	}
	return fmt.Sprintf("WGS 84 / UTM zone %d%s", z.Number, h)
}

// ZoneForLongitude returns the zone number covering lon. Longitudes outside
// [-180, 180) are wrapped first.
func ZoneForLongitude(lon float64) int {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	n := int(math.Floor(lon/zoneWidth)) + 1
	if n > numZones {
		n = numZones
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Resolve picks the zone whose band covers the center longitude of b and
// the hemisphere holding it. A bound that straddles the equator takes the
// hemisphere of its latitude centroid.
func Resolve(b orb.Bound) (Zone, error) {
	for _, v := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Zone{}, &ZoneResolutionError{Bound: b, Reason: "non-finite coordinate"}
		}
	}
	if b.Min[1] < -90 || b.Max[1] > 90 {
		return Zone{}, &ZoneResolutionError{Bound: b, Reason: "latitude out of range"}
	}
	if b.Max[0] <= b.Min[0] || b.Max[1] <= b.Min[1] {
		return Zone{}, &ZoneResolutionError{Bound: b, Reason: "degenerate bound"}
	}

	center := b.Center()
	zone := Zone{Number: ZoneForLongitude(center[0])}
	switch {
	case b.Min[1] >= 0:
		zone.North = true
	case b.Max[1] < 0:
		zone.North = false
	default:
		zone.North = center[1] >= 0
	}
	return zone, nil
}
