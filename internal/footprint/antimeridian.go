package footprint

import "github.com/paulmach/orb"

// DefaultSeamThreshold is the longitude span, in degrees, above which a
// footprint is taken to cross the antimeridian.
const DefaultSeamThreshold = 180.0

// Normalized is a footprint whose longitudes are contiguous. Bound is only
// meant for CRS selection.
type Normalized struct {
	Polygon orb.Polygon
	Bound   orb.Bound
	Crossed bool
}

// CrossesSeam reports whether the ring spans the antimeridian. Vertices
// lying exactly on +/-180 count as crossing.
func CrossesSeam(ring orb.Ring, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultSeamThreshold
	}
	b := ring.Bound()
	if b.Max[0]-b.Min[0] > threshold {
		return true
	}
	for _, p := range ring {
		if p[0] == 180 || p[0] == -180 {
			return true
		}
	}
	return false
}

// Normalize shifts negative longitudes by +360 when the footprint crosses
// the antimeridian, so that its bound no longer spans the whole globe.
func Normalize(fp Footprint, threshold float64) (Normalized, error) {
	if !CrossesSeam(fp.Ring, threshold) {
		return Normalized{
			Polygon: orb.Polygon{fp.Ring},
			Bound:   fp.Ring.Bound(),
		}, nil
	}

	shifted := make(orb.Ring, len(fp.Ring))
	for i, p := range fp.Ring {
		if p[0] < 0 {
			p[0] += 360
		}
		shifted[i] = p
	}
	if err := validate(shifted); err != nil {
		return Normalized{}, err
	}
	return Normalized{
		Polygon: orb.Polygon{shifted},
		Bound:   shifted.Bound(),
		Crossed: true,
	}, nil
}
