package raster

import (
	"errors"
	"fmt"

	"github.com/airbusgeo/godal"
)

// Writer creates GeoTIFFs with the GTiff driver.
type Writer struct {
	Options Options
}

// WriteGeoTIFF writes the band to path, replacing CRS and geotransform with
// the given EPSG code and GDAL geotransform. Size, pixel type, band count
// and nodata are carried over from the band.
func (w Writer) WriteGeoTIFF(path string, band *Band, epsg int, gt [6]float64) (err error) {
	if band == nil || band.Count() == 0 {
		return errors.New("no pixel data to write")
	}
	sr, err := godal.NewSpatialRefFromEPSG(epsg)
	if err != nil {
		return fmt.Errorf("failed to create spatial reference EPSG:%d: %w", epsg, err)
	}
	defer sr.Close()

	ds, err := godal.Create(godal.GTiff, path, band.Count(), band.DataType, band.Width, band.Height,
		godal.CreationOption(w.Options.CreationOptions...),
		godal.ConfigOption(w.Options.ConfigOptions...),
		godal.ErrLogger(w.Options.errLogger()))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := ds.SetSpatialRef(sr); err != nil {
		return fmt.Errorf("failed to set spatial reference on %s: %w", path, err)
	}
	if err := ds.SetGeoTransform(gt); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
	}
	for i, dst := range ds.Bands() {
		if band.HasNoData {
			if err := dst.SetNoData(band.NoData); err != nil {
				return fmt.Errorf("failed to set nodata on band %d of %s: %w", i+1, path, err)
			}
		}
		if err := dst.Write(0, 0, band.Data[i], band.Width, band.Height); err != nil {
			return fmt.Errorf("failed to write band %d of %s: %w", i+1, path, err)
		}
	}
	return nil
}

// Translate converts the raster named src to a GeoTIFF at dst as-is, keeping
// whatever georeferencing GDAL reports for the source.
func (w Writer) Translate(src, dst string) error {
	ds, err := godal.Open(src, godal.ErrLogger(w.Options.errLogger()))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer ds.Close()

	out, err := ds.Translate(dst, w.Options.translateSwitches(),
		godal.ConfigOption(w.Options.ConfigOptions...),
		godal.ErrLogger(w.Options.errLogger()))
	if err != nil {
		return fmt.Errorf("failed to translate %s: %w", src, err)
	}
	return out.Close()
}
