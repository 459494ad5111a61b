package raster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/airbusgeo/godal"
)

// NotAnHDFFileError is returned when an input entry cannot be opened as an
// HDF4 container.
type NotAnHDFFileError struct {
	Path string
	Err  error
}

func (e *NotAnHDFFileError) Error() string {
	return fmt.Sprintf("%s is not an HDF file: %v", e.Path, e.Err)
}

func (e *NotAnHDFFileError) Unwrap() error {
	return e.Err
}

// Container is an opened granule: its attributes, its subdataset
// identifiers and access to the pixels behind each identifier.
type Container interface {
	Metadata() map[string]string
	Subdatasets() []string
	ReadBand(name string) (*Band, error)
	Close() error
}

type Opener interface {
	Open(path string) (Container, error)
}

// HDFOpener opens HDF4 granules with GDAL.
type HDFOpener struct {
	Options Options
}

func (o HDFOpener) Open(path string) (Container, error) {
	ds, err := godal.Open(path, godal.Drivers("HDF4"), godal.ErrLogger(o.Options.errLogger()))
	if err != nil {
		return nil, &NotAnHDFFileError{Path: path, Err: err}
	}
	return &hdfContainer{ds: ds, opts: o.Options}, nil
}

type hdfContainer struct {
	ds   *godal.Dataset
	opts Options
}

func (c *hdfContainer) Metadata() map[string]string {
	return c.ds.Metadatas()
}

func (c *hdfContainer) Subdatasets() []string {
	return subdatasetNames(c.ds.Metadatas(godal.Domain("SUBDATASETS")))
}

func (c *hdfContainer) ReadBand(name string) (*Band, error) {
	return ReadBand(name, c.opts)
}

func (c *hdfContainer) Close() error {
	return c.ds.Close()
}

// subdatasetNames returns the SUBDATASET_<n>_NAME values ordered by n.
func subdatasetNames(md map[string]string) []string {
	type entry struct {
		idx  int
		name string
	}
	var entries []entry
	for k, v := range md {
		if !strings.HasPrefix(k, "SUBDATASET_") || !strings.HasSuffix(k, "_NAME") {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(k, "SUBDATASET_"), "_NAME"))
		if err != nil {
			continue
		}
		entries = append(entries, entry{idx: idx, name: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].idx < entries[j].idx
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
