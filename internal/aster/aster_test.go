package aster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTags() map[string]string {
	return map[string]string{
		KeyOrientationAngle: "8.3",
		KeyUpperLeft:        "35.0, -120.0",
		KeyUpperRight:       "35.0,-119.5",
		KeyLowerRight:       "34.5,-119.5",
		KeyLowerLeft:        "34.5,-120.0",
		"SHORTNAME":         "AST_L1B",
	}
}

func TestParseMetadata(t *testing.T) {
	md, err := ParseMetadata(validTags())
	require.NoError(t, err)

	assert.Equal(t, 8.3, md.OrientationAngle)
	assert.Equal(t, RawCorner{First: "35.0", Second: "-120.0"}, md.UpperLeft())
	assert.Equal(t, RawCorner{First: "34.5", Second: "-120.0"}, md.Corners[3])
}

func TestParseMetadataMissingKeys(t *testing.T) {
	for _, key := range append([]string{KeyOrientationAngle}, CornerKeys[:]...) {
		t.Run(key, func(t *testing.T) {
			tags := validTags()
			delete(tags, key)

			_, err := ParseMetadata(tags)
			var missing *MissingAttributeError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, key, missing.Key)
		})
	}
}

func TestParseMetadataMalformed(t *testing.T) {
	cases := map[string]struct {
		key, value string
	}{
		"angle not a number": {KeyOrientationAngle, "north"},
		"corner one part":    {KeyUpperLeft, "35.0"},
		"corner three parts": {KeyLowerLeft, "34.5,-120.0,0"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tags := validTags()
			tags[tc.key] = tc.value

			_, err := ParseMetadata(tags)
			var malformed *MalformedAttributeError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tc.key, malformed.Key)
		})
	}
}

func TestParseSubdataset(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Subdataset
	}{
		{
			name:  "quoted path",
			input: `HDF4_EOS:EOS_SWATH:"/data/AST_L1B_003.hdf":VNIR_Swath:ImageData1`,
			want: Subdataset{
				Driver: "HDF4_EOS", Kind: "EOS_SWATH", Path: "/data/AST_L1B_003.hdf",
				Swath: "VNIR_Swath", Field: "ImageData1",
			},
		},
		{
			name:  "quoted path with drive letter",
			input: `HDF4_EOS:EOS_SWATH:"C:\data\AST.hdf":TIR_Swath:ImageData10`,
			want: Subdataset{
				Driver: "HDF4_EOS", Kind: "EOS_SWATH", Path: `C:\data\AST.hdf`,
				Swath: "TIR_Swath", Field: "ImageData10",
			},
		},
		{
			name:  "unquoted path",
			input: "HDF4_EOS:EOS_SWATH:/data/AST.hdf:SWIR_Swath:ImageData4",
			want: Subdataset{
				Driver: "HDF4_EOS", Kind: "EOS_SWATH", Path: "/data/AST.hdf",
				Swath: "SWIR_Swath", Field: "ImageData4",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSubdataset(tc.input)
			require.NoError(t, err)
			tc.want.Name = tc.input
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSubdatasetRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"HDF4_EOS:EOS_SWATH:VNIR_Swath",
		`HDF4_EOS:EOS_SWATH:"/data/AST.hdf:VNIR_Swath:ImageData1`,
		`HDF4_EOS:EOS_SWATH:"/data/AST.hdf":ImageData1`,
		`HDF4_EOS:"/data/AST.hdf":VNIR_Swath:ImageData1`,
		"HDF4_EOS:EOS_SWATH:/data/AST.hdf::ImageData1",
	} {
		_, err := ParseSubdataset(input)
		var malformed *MalformedSubdatasetError
		assert.True(t, errors.As(err, &malformed), "input %q: got %v", input, err)
	}
}

func TestOutputName(t *testing.T) {
	sd, err := ParseSubdataset(`HDF4_EOS:EOS_SWATH:"/in/AST_L1B_0031.hdf":VNIR_Swath:ImageData3N`)
	require.NoError(t, err)
	assert.Equal(t, "AST_L1B_0031_VNIR_Swath_ImageData3N.tif", sd.OutputName("AST_L1B_0031"))
}

func TestClassifyBand(t *testing.T) {
	cases := []struct {
		name      string
		class     BandClass
		pixelSize float64
	}{
		{"VNIR_Swath:ImageData1", VNIR, 15},
		{"SWIR_Swath:ImageData5", SWIR, 30},
		{"TIR_Swath:ImageData12", TIR, 90},
		{"vnir_swath", VNIR, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ClassifyBand(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.class, c)
			assert.Equal(t, tc.pixelSize, c.PixelSize())
		})
	}
}

func TestClassifyBandUnknown(t *testing.T) {
	_, err := ClassifyBand("Geolocation:Latitude")
	var unknown *UnknownBandClassError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Geolocation:Latitude", unknown.Name)
}

func TestSubdatasetClassIgnoresPath(t *testing.T) {
	sd, err := ParseSubdataset(`HDF4_EOS:EOS_SWATH:"/VNIR/AST.hdf":Geolocation:Latitude`)
	require.NoError(t, err)

	_, err = sd.Class()
	var unknown *UnknownBandClassError
	assert.True(t, errors.As(err, &unknown))
}
