package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

const wgs84 = 4326

// Projector reprojects WGS 84 geographic coordinates into a projected CRS.
type Projector struct {
	epsg int
	src  *godal.SpatialRef
	dst  *godal.SpatialRef
	tr   *godal.Transform
}

func NewProjector(epsg int) (*Projector, error) {
	src, err := godal.NewSpatialRefFromEPSG(wgs84)
	if err != nil {
		return nil, fmt.Errorf("error creating source SRS (EPSG:%d): %w", wgs84, err)
	}
	dst, err := godal.NewSpatialRefFromEPSG(epsg)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("error creating target SRS (EPSG:%d): %w", epsg, err)
	}
	tr, err := godal.NewTransform(src, dst)
	if err != nil {
		src.Close()
		dst.Close()
		return nil, fmt.Errorf("error creating coordinate transformation from EPSG:%d to EPSG:%d: %w", wgs84, epsg, err)
	}
	return &Projector{epsg: epsg, src: src, dst: dst, tr: tr}, nil
}

func (p *Projector) EPSG() int {
	return p.epsg
}

// Project maps lon/lat in degrees to easting/northing.
func (p *Projector) Project(lon, lat float64) (float64, float64, error) {
	xs := []float64{lon}
	ys := []float64{lat}
	ok := make([]bool, 1)
	if err := p.tr.TransformEx(xs, ys, nil, ok); err != nil {
		return 0, 0, fmt.Errorf("error during coordinate transformation: %w", err)
	}
	if !ok[0] {
		return 0, 0, fmt.Errorf("transformation from EPSG:%d to EPSG:%d failed for (%.8f, %.8f)", wgs84, p.epsg, lon, lat)
	}
	return xs[0], ys[0], nil
}

func (p *Projector) Close() {
	p.tr.Close()
	p.dst.Close()
	p.src.Close()
}
