package aster

import (
	"strconv"
	"strings"
)

// Granule level attribute keys exposed by the HDF4 driver.
const (
	KeyOrientationAngle = "MAPORIENTATIONANGLE"
	KeyUpperLeft        = "UPPERLEFT"
	KeyUpperRight       = "UPPERRIGHT"
	KeyLowerRight       = "LOWERRIGHT"
	KeyLowerLeft        = "LOWERLEFT"
)

// CornerKeys lists the corner attributes in footprint order.
var CornerKeys = [4]string{KeyUpperLeft, KeyUpperRight, KeyLowerRight, KeyLowerLeft}

// RawCorner holds the two components of a corner attribute as stored,
// latitude first and longitude second.
type RawCorner struct {
	First  string
	Second string
}

// Metadata is the scene level information needed to georeference a granule.
type Metadata struct {
	OrientationAngle float64
	// Corners are ordered UL, UR, LR, LL.
	Corners [4]RawCorner
}

func (m Metadata) UpperLeft() RawCorner {
	return m.Corners[0]
}

// ParseMetadata reads the orientation angle and the four corners from the
// granule attribute set.
func ParseMetadata(tags map[string]string) (Metadata, error) {
	var md Metadata

	rawAngle, err := lookup(tags, KeyOrientationAngle)
	if err != nil {
		return md, err
	}
	angle, err := strconv.ParseFloat(rawAngle, 64)
	if err != nil {
		return md, &MalformedAttributeError{Key: KeyOrientationAngle, Value: rawAngle, Err: err}
	}
	md.OrientationAngle = angle

	for i, key := range CornerKeys {
		raw, err := lookup(tags, key)
		if err != nil {
			return md, err
		}
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			return md, &MalformedAttributeError{Key: key, Value: raw}
		}
		md.Corners[i] = RawCorner{
			First:  strings.TrimSpace(parts[0]),
			Second: strings.TrimSpace(parts[1]),
		}
	}
	return md, nil
}

func lookup(tags map[string]string, key string) (string, error) {
	v, ok := tags[key]
	if !ok {
		return "", &MissingAttributeError{Key: key}
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &MissingAttributeError{Key: key}
	}
	return v, nil
}
