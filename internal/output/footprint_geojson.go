package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/earthdata-tools/aster2tif/internal/georef"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func FootprintGeoJSONName(granuleID string) string {
	return granuleID + "_footprint.geojson"
}

// CreateFootprintGeoJSON saves the normalized footprint of a located granule
// as a single feature collection. Longitudes stay shifted when the granule
// crosses the antimeridian.
func CreateFootprintGeoJSON(dir string, g *georef.Granule) (string, error) {
	if !g.Located {
		return "", fmt.Errorf("granule %s has not been located", g.ID)
	}

	f := geojson.NewFeature(g.Normalized.Polygon)
	f.BBox = geojson.NewBBox(g.Normalized.Bound)
	f.Properties["granule"] = g.ID
	f.Properties["epsg"] = g.Zone.EPSG()
	f.Properties["crs_name"] = g.Zone.String()
	f.Properties["orientation_angle"] = g.Metadata.OrientationAngle
	f.Properties["antimeridian"] = g.Normalized.Crossed
	ul := g.Footprint.UpperLeft()
	f.Properties["upper_left"] = []float64{ul[0], ul[1]}

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	data, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode footprint: %w", err)
	}

	outputPath := filepath.Join(dir, FootprintGeoJSONName(g.ID))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save footprint: %w", err)
	}
	return outputPath, nil
}

// ReadFootprintGeoJSON returns the footprint ring stored by
// CreateFootprintGeoJSON.
func ReadFootprintGeoJSON(path string) (orb.Ring, geojson.Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, err
	}
	if len(fc.Features) != 1 {
		return nil, nil, fmt.Errorf("expected one feature in %s, got %d", path, len(fc.Features))
	}
	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	if !ok || len(poly) == 0 {
		return nil, nil, fmt.Errorf("feature in %s is not a polygon", path)
	}
	return poly[0], fc.Features[0].Properties, nil
}
