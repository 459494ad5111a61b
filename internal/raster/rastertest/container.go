// Package rastertest provides in-memory granules for tests that cannot ship
// real HDF4 files.
package rastertest

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/earthdata-tools/aster2tif/internal/raster"
)

// Container is an in-memory raster.Container.
type Container struct {
	Tags   map[string]string
	Names  []string
	Bands  map[string]*raster.Band
	Closed bool
}

func (c *Container) Metadata() map[string]string {
	return c.Tags
}

func (c *Container) Subdatasets() []string {
	return c.Names
}

func (c *Container) ReadBand(name string) (*raster.Band, error) {
	b, ok := c.Bands[name]
	if !ok {
		return nil, fmt.Errorf("no such subdataset %s", name)
	}
	return b, nil
}

func (c *Container) Close() error {
	c.Closed = true
	return nil
}

// ByteBand returns a single band Byte raster filled with a ramp.
func ByteBand(width, height int) *raster.Band {
	buf := make([]byte, width*height)
	for i := range buf {
		buf[i] = byte(i % 251)
	}
	return &raster.Band{
		Width:    width,
		Height:   height,
		DataType: godal.Byte,
		Data:     []interface{}{buf},
	}
}

// Opener serves in-memory containers by path and hands every other path
// to Fallback.
type Opener struct {
	Containers map[string]*Container
	Fallback   raster.Opener
}

func (o Opener) Open(path string) (raster.Container, error) {
	if c, ok := o.Containers[path]; ok {
		return c, nil
	}
	if o.Fallback == nil {
		return nil, &raster.NotAnHDFFileError{Path: path, Err: fmt.Errorf("not registered")}
	}
	return o.Fallback.Open(path)
}
