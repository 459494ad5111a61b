package output

import (
	"fmt"
	"path/filepath"

	"github.com/earthdata-tools/aster2tif/internal/footprint"
	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

const (
	quicklookSize    = 512
	quicklookPadding = 32
)

// QuicklookName is the PNG written next to the band GeoTIFFs of a granule.
func QuicklookName(granuleID string) string {
	return granuleID + "_footprint.png"
}

// CreateFootprintQuicklook draws the normalized footprint of a granule with
// its bounding box and upper left corner, and saves it as a PNG in dir.
func CreateFootprintQuicklook(dir, granuleID string, n footprint.Normalized) (string, error) {
	if len(n.Polygon) == 0 || len(n.Polygon[0]) < 4 {
		return "", fmt.Errorf("granule %s has no footprint to draw", granuleID)
	}
	ring := n.Polygon[0]
	b := n.Bound

	span := b.Max[0] - b.Min[0]
	if h := b.Max[1] - b.Min[1]; h > span {
		span = h
	}
	if span <= 0 {
		return "", fmt.Errorf("granule %s footprint is degenerate", granuleID)
	}
	scale := float64(quicklookSize-2*quicklookPadding) / span

	// north up, west left
	toCanvas := func(p orb.Point) (float64, float64) {
		return quicklookPadding + (p[0]-b.Min[0])*scale, quicklookPadding + (b.Max[1]-p[1])*scale
	}

	dc := gg.NewContext(quicklookSize, quicklookSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// bounding box
	x0, y0 := toCanvas(orb.Point{b.Min[0], b.Max[1]})
	x1, y1 := toCanvas(orb.Point{b.Max[0], b.Min[1]})
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	dc.Stroke()

	// footprint
	for i, p := range ring {
		x, y := toCanvas(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(0.1, 0.4, 0.8, 0.35)
	dc.FillPreserve()
	dc.SetRGB(0.1, 0.4, 0.8)
	dc.SetLineWidth(2)
	dc.Stroke()

	// upper left corner, the anchor of every band transform
	ux, uy := toCanvas(ring[0])
	dc.SetRGB(1, 0, 0)
	dc.DrawCircle(ux, uy, 5)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	label := fmt.Sprintf("%s  [%.3f, %.3f] x [%.3f, %.3f]", granuleID, b.Min[0], b.Max[0], b.Min[1], b.Max[1])
	if n.Crossed {
		label += "  antimeridian"
	}
	dc.DrawStringAnchored(label, quicklookSize/2, quicklookSize-quicklookPadding/2, 0.5, 0.5)

	outputPath := filepath.Join(dir, QuicklookName(granuleID))
	if err := dc.SavePNG(outputPath); err != nil {
		return "", fmt.Errorf("failed to save quicklook: %w", err)
	}
	return outputPath, nil
}
