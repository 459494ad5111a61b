package raster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Register()
	os.Exit(m.Run())
}

func TestSubdatasetNamesOrdered(t *testing.T) {
	md := map[string]string{
		"SUBDATASET_10_NAME": "HDF4_EOS:EOS_SWATH:\"a.hdf\":TIR_Swath:ImageData10",
		"SUBDATASET_2_NAME":  "HDF4_EOS:EOS_SWATH:\"a.hdf\":VNIR_Swath:ImageData2",
		"SUBDATASET_1_NAME":  "HDF4_EOS:EOS_SWATH:\"a.hdf\":VNIR_Swath:ImageData1",
		"SUBDATASET_1_DESC":  "[4200x4980] ImageData1 VNIR_Swath (8-bit unsigned integer)",
		"SUBDATASET_X_NAME":  "ignored",
	}
	assert.Equal(t, []string{
		"HDF4_EOS:EOS_SWATH:\"a.hdf\":VNIR_Swath:ImageData1",
		"HDF4_EOS:EOS_SWATH:\"a.hdf\":VNIR_Swath:ImageData2",
		"HDF4_EOS:EOS_SWATH:\"a.hdf\":TIR_Swath:ImageData10",
	}, subdatasetNames(md))
}

func TestOpenRejectsNonHDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a granule"), 0644))

	_, err := HDFOpener{Options: DefaultOptions()}.Open(path)
	var notHDF *NotAnHDFFileError
	require.True(t, errors.As(err, &notHDF), "got %v", err)
	assert.Equal(t, path, notHDF.Path)
}

func TestWriteGeoTIFFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "band.tif")
	buf := make([]uint16, 6*4)
	for i := range buf {
		buf[i] = uint16(i * 100)
	}
	band := &Band{
		Width: 6, Height: 4, DataType: godal.UInt16,
		NoData: 0, HasNoData: true,
		Data: []interface{}{buf},
	}
	gt := [6]float64{227000, 14.6, -3.1, 3877000, -3.1, -14.6}

	require.NoError(t, Writer{Options: DefaultOptions()}.WriteGeoTIFF(path, band, 32611, gt))

	got, err := ReadBand(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 6, got.Width)
	assert.Equal(t, 4, got.Height)
	assert.Equal(t, godal.UInt16, got.DataType)
	assert.Equal(t, 1, got.Count())
	assert.True(t, got.HasNoData)
	assert.Equal(t, buf, got.Data[0])

	ds, err := godal.Open(path)
	require.NoError(t, err)
	defer ds.Close()

	readGT, err := ds.GeoTransform()
	require.NoError(t, err)
	assert.Equal(t, gt, readGT)

	want, err := godal.NewSpatialRefFromEPSG(32611)
	require.NoError(t, err)
	defer want.Close()
	sr := ds.SpatialRef()
	defer sr.Close()
	assert.True(t, sr.IsSame(want))

	_, err = os.Stat(path + ".aux.xml")
	assert.True(t, os.IsNotExist(err), "no PAM sidecar expected")
}

func TestWriteGeoTIFFRejectsEmptyBand(t *testing.T) {
	err := Writer{Options: DefaultOptions()}.WriteGeoTIFF(filepath.Join(t.TempDir(), "x.tif"), &Band{}, 32611, [6]float64{})
	assert.Error(t, err)
}

func TestProjectorCentralMeridian(t *testing.T) {
	p, err := NewProjector(32611)
	require.NoError(t, err)
	defer p.Close()

	x, y, err := p.Project(-117, 0)
	require.NoError(t, err)
	assert.InDelta(t, 500000, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)

	x, y, err = p.Project(-120, 35)
	require.NoError(t, err)
	assert.Less(t, x, 500000.0)
	assert.InDelta(t, 3.877e6, y, 5e3)
}

func TestProjectorSouthernFalseNorthing(t *testing.T) {
	p, err := NewProjector(32731)
	require.NoError(t, err)
	defer p.Close()

	x, y, err := p.Project(3, 0)
	require.NoError(t, err)
	assert.InDelta(t, 500000, x, 1e-6)
	assert.InDelta(t, 10000000, y, 1e-6)
}
