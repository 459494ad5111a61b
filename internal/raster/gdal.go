package raster

import (
	"fmt"
	"io"
	"sync"

	"github.com/airbusgeo/godal"
)

var registerOnce sync.Once

// Register makes every GDAL driver available, HDF4 included when the
// linked GDAL was built with it. Safe to call more than once.
func Register() {
	registerOnce.Do(godal.RegisterAll)
}

// Options is the GDAL configuration handed to each call. Nothing here is
// set process-wide.
type Options struct {
	// CreationOptions for the GTiff driver, e.g. COMPRESS=LZW.
	CreationOptions []string
	// ConfigOptions are KEY=VALUE pairs scoped to the call.
	ConfigOptions []string
	// Warnings receives GDAL warnings; nil drops them.
	Warnings io.Writer
}

var DefaultCreationOptions = []string{"COMPRESS=LZW", "TILED=YES"}

// DefaultOptions writes LZW compressed tiled GeoTIFFs without .aux.xml sidecars.
func DefaultOptions() Options {
	return Options{
		CreationOptions: append([]string(nil), DefaultCreationOptions...),
		ConfigOptions:   []string{"GDAL_PAM_ENABLED=NO"},
	}
}

func (o Options) errLogger() godal.ErrorHandler {
	return func(ec godal.ErrorCategory, code int, msg string) error {
		if ec < godal.CE_Failure {
			if o.Warnings != nil && ec == godal.CE_Warning {
				fmt.Fprintf(o.Warnings, "gdal warning: %s\n", msg)
			}
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}
}

func (o Options) translateSwitches() []string {
	switches := []string{"-of", "GTiff"}
	for _, co := range o.CreationOptions {
		switches = append(switches, "-co", co)
	}
	return switches
}

// newBuffer allocates a pixel buffer godal can read into for the data type.
func newBuffer(dt godal.DataType, n int) (interface{}, error) {
	switch dt {
	case godal.Byte:
		return make([]byte, n), nil
	case godal.UInt16:
		return make([]uint16, n), nil
	case godal.Int16:
		return make([]int16, n), nil
	case godal.UInt32:
		return make([]uint32, n), nil
	case godal.Int32:
		return make([]int32, n), nil
	case godal.Float32:
		return make([]float32, n), nil
	case godal.Float64:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("unsupported pixel type %s", dt)
}
