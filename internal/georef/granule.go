package georef

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/earthdata-tools/aster2tif/internal/aster"
	"github.com/earthdata-tools/aster2tif/internal/footprint"
	"github.com/earthdata-tools/aster2tif/internal/utm"
)

// Granule is one input file with everything needed to georeference its bands.
type Granule struct {
	ID          string
	Path        string
	Subdatasets []aster.Subdataset

	// Set by Locate.
	Metadata   aster.Metadata
	Footprint  footprint.Footprint
	Normalized footprint.Normalized
	Zone       utm.Zone
	Located    bool
}

// GranuleID is the file name up to its first dot.
func GranuleID(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// NewGranule parses the subdataset identifiers of the file at path.
func NewGranule(path string, subdatasets []string) (*Granule, error) {
	g := &Granule{ID: GranuleID(path), Path: path}
	if len(subdatasets) == 0 {
		return nil, fmt.Errorf("%s has no subdatasets", path)
	}
	for _, name := range subdatasets {
		sd, err := aster.ParseSubdataset(name)
		if err != nil {
			return nil, err
		}
		g.Subdatasets = append(g.Subdatasets, sd)
	}
	return g, nil
}

// Locate derives the footprint and the target UTM zone from the granule
// attributes.
func (g *Granule) Locate(tags map[string]string, seamThreshold float64) error {
	md, err := aster.ParseMetadata(tags)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	fp, err := footprint.Build(md.Corners)
	if err != nil {
		return fmt.Errorf("failed to build footprint: %w", err)
	}
	norm, err := footprint.Normalize(fp, seamThreshold)
	if err != nil {
		return fmt.Errorf("failed to normalize footprint: %w", err)
	}
	zone, err := utm.Resolve(norm.Bound)
	if err != nil {
		return fmt.Errorf("failed to resolve UTM zone: %w", err)
	}

	g.Metadata = md
	g.Footprint = fp
	g.Normalized = norm
	g.Zone = zone
	g.Located = true
	return nil
}
