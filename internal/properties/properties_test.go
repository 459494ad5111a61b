package properties

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/earthdata-tools/aster2tif/internal/georef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup("in", "out", env(nil))
	require.NoError(t, err)

	assert.Equal(t, georef.ModeGeoreference, cfg.Mode)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 180.0, cfg.AntimeridianThreshold)
	assert.False(t, cfg.KeepPartial)
	assert.Equal(t, filepath.Join("out", "aster2tif_report.csv"), cfg.ReportPath)
	assert.Equal(t, []string{"COMPRESS=LZW", "TILED=YES"}, cfg.CreationOptions)
	assert.False(t, cfg.Quicklook)
	assert.Empty(t, cfg.WebhookURL)

	opts := cfg.RasterOptions()
	assert.Equal(t, []string{"COMPRESS=LZW", "TILED=YES"}, opts.CreationOptions)
	assert.Contains(t, opts.ConfigOptions, "GDAL_PAM_ENABLED=NO")
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup("in", "out", env(map[string]string{
		Mode:                  "translate",
		Workers:               "4",
		AntimeridianThreshold: "170",
		PartialOutput:         "KEEP",
		ReportPath:            "-",
		WebhookURL:            "https://hooks.example.com/x",
		Quicklook:             "true",
		CreationOptions:       "COMPRESS=DEFLATE, TILED=YES,",
	}))
	require.NoError(t, err)

	assert.Equal(t, georef.ModeTranslate, cfg.Mode)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 170.0, cfg.AntimeridianThreshold)
	assert.True(t, cfg.KeepPartial)
	assert.Empty(t, cfg.ReportPath)
	assert.Equal(t, "https://hooks.example.com/x", cfg.WebhookURL)
	assert.True(t, cfg.Quicklook)
	assert.Equal(t, []string{"COMPRESS=DEFLATE", "TILED=YES"}, cfg.CreationOptions)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"mode":      {Mode: "warp"},
		"workers":   {Workers: "0"},
		"threshold": {AntimeridianThreshold: "abc"},
		"partial":   {PartialOutput: "sometimes"},
		"quicklook": {Quicklook: "maybe"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup("in", "out", env(vars))
			assert.Error(t, err)
		})
	}
}

func TestDirectoriesRequired(t *testing.T) {
	_, err := FromLookup("", "out", env(nil))
	assert.Error(t, err)
	_, err = FromLookup("in", " ", env(nil))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ASTER_WORKERS=3\n"), 0644))
	t.Setenv(Workers, "")
	os.Unsetenv(Workers)

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	cfg, err := Load("in", "out")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}
