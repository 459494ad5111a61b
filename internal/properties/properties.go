package properties

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/earthdata-tools/aster2tif/internal/footprint"
	"github.com/earthdata-tools/aster2tif/internal/georef"
	"github.com/earthdata-tools/aster2tif/internal/raster"
	"github.com/joho/godotenv"
)

// Environment variables
const (
	Mode                  = "ASTER_MODE"
	Workers               = "ASTER_WORKERS"
	AntimeridianThreshold = "ASTER_ANTIMERIDIAN_THRESHOLD"
	PartialOutput         = "ASTER_PARTIAL_OUTPUT"
	ReportPath            = "ASTER_REPORT_PATH"
	WebhookURL            = "ASTER_WEBHOOK_URL"
	Quicklook             = "ASTER_QUICKLOOK"
	CreationOptions       = "ASTER_CREATION_OPTIONS"
)

const (
	PartialCleanup = "cleanup"
	PartialKeep    = "keep"

	// DisabledReport as ASTER_REPORT_PATH turns the CSV report off.
	DisabledReport    = "-"
	defaultReportName = "aster2tif_report.csv"
)

type Config struct {
	InputDir  string
	OutputDir string

	Mode                  georef.Mode
	Workers               int
	AntimeridianThreshold float64
	KeepPartial           bool
	ReportPath            string
	WebhookURL            string
	Quicklook             bool
	CreationOptions       []string
}

// LoadEnv reads KEY=VALUE pairs from the dotenv files into the environment
// without overriding variables that are already set. Missing files are
// ignored; an empty list tries ./.env.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration for a run from the two directories and the
// environment.
func Load(inputDir, outputDir string) (Config, error) {
	return FromLookup(inputDir, outputDir, os.LookupEnv)
}

// FromLookup is Load with an injectable environment.
func FromLookup(inputDir, outputDir string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		InputDir:              inputDir,
		OutputDir:             outputDir,
		Mode:                  georef.ModeGeoreference,
		Workers:               1,
		AntimeridianThreshold: footprint.DefaultSeamThreshold,
		CreationOptions:       append([]string(nil), raster.DefaultCreationOptions...),
	}
	if strings.TrimSpace(inputDir) == "" {
		return cfg, errors.New("input directory is required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return cfg, errors.New("output directory is required")
	}

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(Mode); ok {
		m, err := georef.ParseMode(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", Mode, err)
		}
		cfg.Mode = m
	}
	if v, ok := get(Workers); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%s must be a positive integer, got %q", Workers, v)
		}
		cfg.Workers = n
	}
	if v, ok := get(AntimeridianThreshold); ok {
		th, err := strconv.ParseFloat(v, 64)
		if err != nil || th <= 0 || th >= 360 {
			return cfg, fmt.Errorf("%s must be a number in (0, 360), got %q", AntimeridianThreshold, v)
		}
		cfg.AntimeridianThreshold = th
	}
	if v, ok := get(PartialOutput); ok {
		switch strings.ToLower(v) {
		case PartialCleanup:
			cfg.KeepPartial = false
		case PartialKeep:
			cfg.KeepPartial = true
		default:
			return cfg, fmt.Errorf("%s must be %q or %q, got %q", PartialOutput, PartialCleanup, PartialKeep, v)
		}
	}
	cfg.ReportPath = filepath.Join(outputDir, defaultReportName)
	if v, ok := get(ReportPath); ok {
		cfg.ReportPath = v
	}
	if cfg.ReportPath == DisabledReport {
		cfg.ReportPath = ""
	}
	if v, ok := get(WebhookURL); ok {
		cfg.WebhookURL = v
	}
	if v, ok := get(Quicklook); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", Quicklook, err)
		}
		cfg.Quicklook = b
	}
	if v, ok := get(CreationOptions); ok {
		cfg.CreationOptions = nil
		for _, co := range strings.Split(v, ",") {
			if co = strings.TrimSpace(co); co != "" {
				cfg.CreationOptions = append(cfg.CreationOptions, co)
			}
		}
	}
	return cfg, nil
}

// RasterOptions returns the GDAL options for the configured output.
func (c Config) RasterOptions() raster.Options {
	opts := raster.DefaultOptions()
	opts.CreationOptions = append([]string(nil), c.CreationOptions...)
	return opts
}
