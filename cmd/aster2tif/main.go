package main

import (
	"os"
	"runtime/debug"
	"time"

	"github.com/earthdata-tools/aster2tif/internal/delivery"
	"github.com/earthdata-tools/aster2tif/internal/notification"
	"github.com/earthdata-tools/aster2tif/internal/properties"
	"github.com/earthdata-tools/aster2tif/internal/raster"
	"github.com/earthdata-tools/aster2tif/internal/ui"
	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
	envFile   string
	noBanner  bool
)

var console = ui.Stdout()

var rootCmd = &cobra.Command{
	Use:   "aster2tif",
	Short: "Convert ASTER L1B HDF granules into georeferenced per-band GeoTIFFs",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		if err := properties.LoadEnv(files...); err != nil {
			return err
		}
		raster.Register()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := properties.Load(inputDir, outputDir)
		if err != nil {
			return err
		}
		if !noBanner {
			console.Banner("aster2tif")
		}

		start := time.Now()
		deps := delivery.Deps{Console: console}
		if cfg.WebhookURL != "" {
			deps.Notifier = notification.New(cfg.WebhookURL)
		}
		summary, err := delivery.Run(cfg, deps)
		if summary.Report != "" {
			console.Info("Report written to %s", summary.Report)
		}
		console.Info("Batch took %.1fs", time.Since(start).Seconds())
		return err
	},
}

func init() {
	rootCmd.Flags().StringVarP(&inputDir, "files", "f", "", "directory holding the ASTER L1B HDF granules")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory receiving the GeoTIFFs")
	rootCmd.Flags().StringVar(&envFile, "env", "", "dotenv file with ASTER_* settings (default ./.env when present)")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "do not print the banner")
	rootCmd.MarkFlagRequired("files")
	rootCmd.MarkFlagRequired("output")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			console.Error("PANIC: %v\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		console.Error("%v", err)
		os.Exit(1)
	}
}
