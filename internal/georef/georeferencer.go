package georef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/earthdata-tools/aster2tif/internal/affine"
	"github.com/earthdata-tools/aster2tif/internal/aster"
	"github.com/earthdata-tools/aster2tif/internal/footprint"
	"github.com/earthdata-tools/aster2tif/internal/raster"
)

type Mode string

const (
	// ModeGeoreference assigns the UTM CRS and the rotated band transform.
	ModeGeoreference Mode = "georeference"
	// ModeTranslate copies each subdataset to GeoTIFF without any CRS
	// correction.
	ModeTranslate Mode = "translate"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeGeoreference:
		return ModeGeoreference, nil
	case ModeTranslate:
		return ModeTranslate, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected %q or %q", s, ModeGeoreference, ModeTranslate)
}

// BandWriter is the raster output used by the Georeferencer. raster.Writer
// implements it.
type BandWriter interface {
	WriteGeoTIFF(path string, band *raster.Band, epsg int, gt [6]float64) error
	Translate(src, dst string) error
}

// BandOutput describes one written GeoTIFF.
type BandOutput struct {
	Subdataset aster.Subdataset
	Class      aster.BandClass
	Path       string
	Transform  affine.Affine
}

type Result struct {
	Granule *Granule
	Outputs []BandOutput
}

// Georeferencer writes one GeoTIFF per band subdataset of a granule.
type Georeferencer struct {
	OutputDir     string
	Writer        BandWriter
	Mode          Mode
	SeamThreshold float64
	// KeepPartial leaves the bands already written on disk when a later
	// band of the same granule fails.
	KeepPartial bool
	// OnBand is called before each band is converted.
	OnBand func(g *Granule, sd aster.Subdataset)
}

func New(outputDir string, w BandWriter) *Georeferencer {
	return &Georeferencer{
		OutputDir:     outputDir,
		Writer:        w,
		Mode:          ModeGeoreference,
		SeamThreshold: footprint.DefaultSeamThreshold,
	}
}

// Convert runs the whole granule pipeline on an opened container.
func (gr *Georeferencer) Convert(path string, src raster.Container) (Result, error) {
	g, err := NewGranule(path, src.Subdatasets())
	if err != nil {
		return Result{}, err
	}
	res := Result{Granule: g}
	if gr.Mode == ModeTranslate {
		res.Outputs, err = gr.translate(g)
		return res, err
	}

	if err := g.Locate(src.Metadata(), gr.SeamThreshold); err != nil {
		return res, err
	}
	res.Outputs, err = gr.Process(g, src)
	return res, err
}

// Process writes every band of a located granule.
func (gr *Georeferencer) Process(g *Granule, src raster.Container) (outputs []BandOutput, err error) {
	if !g.Located {
		return nil, errors.New("granule footprint has not been located")
	}

	// classify everything first so an unknown band leaves nothing behind
	classes := make([]aster.BandClass, len(g.Subdatasets))
	for i, sd := range g.Subdatasets {
		if classes[i], err = sd.Class(); err != nil {
			return nil, err
		}
	}

	epsg := g.Zone.EPSG()
	proj, err := raster.NewProjector(epsg)
	if err != nil {
		return nil, err
	}
	defer proj.Close()

	ul := g.Footprint.UpperLeft()
	originX, originY, err := proj.Project(ul[0], ul[1])
	if err != nil {
		return nil, fmt.Errorf("failed to reproject upper left corner: %w", err)
	}

	defer func() {
		if err != nil {
			outputs = gr.discard(outputs)
		}
	}()

	for i, sd := range g.Subdatasets {
		if gr.OnBand != nil {
			gr.OnBand(g, sd)
		}
		out := BandOutput{
			Subdataset: sd,
			Class:      classes[i],
			Path:       filepath.Join(gr.OutputDir, sd.OutputName(g.ID)),
			Transform:  BandTransform(originX, originY, classes[i], g.Metadata.OrientationAngle),
		}

		band, err := src.ReadBand(sd.Name)
		if err != nil {
			return outputs, fmt.Errorf("failed to read %s: %w", sd.Name, err)
		}
		if err := gr.Writer.WriteGeoTIFF(out.Path, band, epsg, out.Transform.GDAL()); err != nil {
			gr.discard([]BandOutput{out})
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// BandTransform anchors the pixel grid of a band at the projected UL corner
// and rotates it about that same corner.
func BandTransform(originX, originY float64, class aster.BandClass, angle float64) affine.Affine {
	size := class.PixelSize()
	return affine.FromOrigin(originX, originY, size, size).Multiply(affine.Rotation(angle))
}

func (gr *Georeferencer) translate(g *Granule) (outputs []BandOutput, err error) {
	defer func() {
		if err != nil {
			outputs = gr.discard(outputs)
		}
	}()
	for _, sd := range g.Subdatasets {
		if gr.OnBand != nil {
			gr.OnBand(g, sd)
		}
		out := BandOutput{Subdataset: sd, Path: filepath.Join(gr.OutputDir, sd.OutputName(g.ID))}
		out.Class, _ = sd.Class()
		if err := gr.Writer.Translate(sd.Name, out.Path); err != nil {
			gr.discard([]BandOutput{out})
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// discard removes outputs of a failed granule unless partial output is
// kept, and returns what is left on disk.
func (gr *Georeferencer) discard(outputs []BandOutput) []BandOutput {
	if gr.KeepPartial {
		return outputs
	}
	var left []BandOutput
	for _, o := range outputs {
		if err := os.Remove(o.Path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "failed to remove partial output %s: %v\n", o.Path, err)
			left = append(left, o)
		}
	}
	return left
}
