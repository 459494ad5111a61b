package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// Band is the full pixel content of one subdataset, read without any
// conversion. Data holds one buffer per raster band.
type Band struct {
	Width     int
	Height    int
	DataType  godal.DataType
	NoData    float64
	HasNoData bool
	Data      []interface{}
}

func (b *Band) Count() int {
	return len(b.Data)
}

// ReadBand opens a raster by name (a file or a subdataset identifier) and
// reads all of its bands.
func ReadBand(name string, opts Options) (*Band, error) {
	ds, err := godal.Open(name, godal.ErrLogger(opts.errLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer ds.Close()

	st := ds.Structure()
	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("%s has no raster bands", name)
	}

	b := &Band{
		Width:    st.SizeX,
		Height:   st.SizeY,
		DataType: st.DataType,
		Data:     make([]interface{}, len(bands)),
	}
	b.NoData, b.HasNoData = bands[0].NoData()

	for i, band := range bands {
		buf, err := newBuffer(b.DataType, b.Width*b.Height)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := band.Read(0, 0, buf, b.Width, b.Height); err != nil {
			return nil, fmt.Errorf("failed to read band %d of %s: %w", i+1, name, err)
		}
		b.Data[i] = buf
	}
	return b, nil
}
