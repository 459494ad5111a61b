package delivery

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/earthdata-tools/aster2tif/internal/aster"
	"github.com/earthdata-tools/aster2tif/internal/georef"
	"github.com/earthdata-tools/aster2tif/internal/notification"
	"github.com/earthdata-tools/aster2tif/internal/output"
	"github.com/earthdata-tools/aster2tif/internal/properties"
	"github.com/earthdata-tools/aster2tif/internal/raster"
	"github.com/earthdata-tools/aster2tif/internal/ui"
	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// Deps are the collaborators of a batch run. Zero values fall back to GDAL,
// the terminal and no notification.
type Deps struct {
	Opener   raster.Opener
	Writer   georef.BandWriter
	Console  *ui.Console
	Notifier *notification.Notifier
	// Progress receives the progress bar. Defaults to stderr.
	Progress io.Writer
}

type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// FileResult is the outcome of one input file.
type FileResult struct {
	File      string
	Granule   string
	Status    Status
	EPSG      int
	Outputs   []georef.BandOutput
	Quicklook string
	GeoJSON   string
	Err       error
}

type Summary struct {
	Discovered int
	Converted  int
	Failed     int
	Bands      int
	Results    []FileResult
	Report     string
}

// Failures lists "<file>: <cause>" for every failed file, in listing order.
func (s Summary) Failures() []string {
	var out []string
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, fmt.Sprintf("%s: %v", r.File, r.Err))
		}
	}
	return out
}

// ListInputFiles returns the regular entries of dir, sorted by name.
// Sub-directories are not visited.
func ListInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Run converts every file of cfg.InputDir. A failing file is reported and
// skipped; the returned error is non-nil when at least one file failed.
func Run(cfg properties.Config, deps Deps) (Summary, error) {
	console := deps.Console
	if console == nil {
		console = ui.Stdout()
	}
	if deps.Opener == nil {
		deps.Opener = raster.HDFOpener{Options: cfg.RasterOptions()}
	}
	if deps.Writer == nil {
		deps.Writer = raster.Writer{Options: cfg.RasterOptions()}
	}
	if deps.Progress == nil {
		deps.Progress = os.Stderr
	}

	files, err := ListInputFiles(cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := Summary{Discovered: len(files), Results: make([]FileResult, len(files))}
	console.Info("Found %d files", len(files))

	var (
		mu          sync.Mutex
		progressBar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(deps.Progress),
			progressbar.OptionSetDescription("Converting granules"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(deps.Progress) }),
		)
	)

	convert := func(i int, path string) {
		res := convertFile(cfg, deps, console, path)
		summary.Results[i] = res

		mu.Lock()
		defer mu.Unlock()
		if res.Err != nil {
			console.Error("%s: %v", res.File, res.Err)
		}
		progressBar.Add(1)
	}

	if cfg.Workers <= 1 {
		for i, f := range files {
			convert(i, f)
		}
	} else {
		wp := workerpool.New(cfg.Workers)
		for i, f := range files {
			i, f := i, f
			wp.Submit(func() { convert(i, f) })
		}
		wp.StopWait()
	}

	for _, r := range summary.Results {
		if r.Status == StatusConverted {
			summary.Converted++
		} else {
			summary.Failed++
		}
		summary.Bands += len(r.Outputs)
	}

	if cfg.ReportPath != "" {
		if err := WriteReport(cfg.ReportPath, cfg.Mode, summary.Results); err != nil {
			console.Warning("%v", err)
		} else {
			summary.Report = cfg.ReportPath
		}
	}

	if deps.Notifier != nil {
		err := deps.Notifier.BatchSummary(summary.Discovered, summary.Converted, summary.Failed, summary.Bands, summary.Failures())
		if err != nil {
			console.Warning("failed to send notification: %v", err)
		}
	}

	if summary.Failed > 0 {
		console.Warning("%d of %d files converted, %d failed", summary.Converted, summary.Discovered, summary.Failed)
		return summary, fmt.Errorf("%d of %d files failed", summary.Failed, summary.Discovered)
	}
	console.Success("%d of %d files converted, %d GeoTIFFs written", summary.Converted, summary.Discovered, summary.Bands)
	return summary, nil
}

func convertFile(cfg properties.Config, deps Deps, console *ui.Console, path string) (res FileResult) {
	res = FileResult{File: filepath.Base(path), Granule: georef.GranuleID(path), Status: StatusFailed}

	src, err := deps.Opener.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer func() {
		if err := src.Close(); err != nil && res.Err == nil {
			res.Err = fmt.Errorf("failed to close %s: %w", path, err)
			res.Status = StatusFailed
		}
	}()

	gr := georef.New(cfg.OutputDir, deps.Writer)
	gr.Mode = cfg.Mode
	gr.SeamThreshold = cfg.AntimeridianThreshold
	gr.KeepPartial = cfg.KeepPartial
	gr.OnBand = func(g *georef.Granule, sd aster.Subdataset) {
		console.Progress("Converting %s", sd.Name)
	}

	result, err := gr.Convert(path, src)
	res.Outputs = result.Outputs
	if g := result.Granule; g != nil && g.Located {
		res.EPSG = g.Zone.EPSG()
	}
	if err != nil {
		res.Err = err
		return res
	}
	res.Status = StatusConverted

	if cfg.Quicklook && result.Granule.Located {
		ql, err := output.CreateFootprintQuicklook(cfg.OutputDir, result.Granule.ID, result.Granule.Normalized)
		if err != nil {
			console.Warning("%s: %v", res.File, err)
		}
		res.Quicklook = ql

		gj, err := output.CreateFootprintGeoJSON(cfg.OutputDir, result.Granule)
		if err != nil {
			console.Warning("%s: %v", res.File, err)
		}
		res.GeoJSON = gj
	}
	return res
}
