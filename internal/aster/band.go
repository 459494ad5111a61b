package aster

import "strings"

type BandClass int

const (
	UnknownClass BandClass = iota
	VNIR
	SWIR
	TIR
)

func (c BandClass) String() string {
	switch c {
	case VNIR:
		return "VNIR"
	case SWIR:
		return "SWIR"
	case TIR:
		return "TIR"
	}
	return "unknown"
}

// PixelSize is the ground sampling distance of the class in meters.
func (c BandClass) PixelSize() float64 {
	switch c {
	case VNIR:
		return 15
	case SWIR:
		return 30
	case TIR:
		return 90
	}
	return 0
}

// Checked in this order; none of the names is a substring of another.
var bandClasses = []BandClass{VNIR, SWIR, TIR}

// ClassifyBand returns the class whose name appears in name.
func ClassifyBand(name string) (BandClass, error) {
	upper := strings.ToUpper(name)
	for _, c := range bandClasses {
		if strings.Contains(upper, c.String()) {
			return c, nil
		}
	}
	return UnknownClass, &UnknownBandClassError{Name: name}
}

// Class classifies the subdataset by its swath and field names. The
// container path is left out so a directory name cannot leak into the result.
func (s Subdataset) Class() (BandClass, error) {
	c, err := ClassifyBand(s.Swath + ":" + s.Field)
	if err != nil {
		return c, &UnknownBandClassError{Name: s.Name}
	}
	return c, nil
}
