package aster

import "strings"

// Subdataset is a parsed GDAL subdataset identifier such as
//
//	HDF4_EOS:EOS_SWATH:"/data/AST_L1B.hdf":VNIR_Swath:ImageData1
type Subdataset struct {
	Name   string
	Driver string
	Kind   string
	Path   string
	Swath  string
	Field  string
}

const minSubdatasetSegments = 5

// ParseSubdataset splits an identifier into its driver, container path,
// swath and field. The container path may be quoted and may itself contain
// colons; swath and field are always the last two segments.
func ParseSubdataset(name string) (Subdataset, error) {
	sd := Subdataset{Name: name}
	if strings.TrimSpace(name) == "" {
		return sd, &MalformedSubdatasetError{Name: name, Reason: "empty identifier"}
	}

	open := strings.IndexByte(name, '"')
	if open >= 0 {
		closing := strings.LastIndexByte(name, '"')
		if closing == open {
			return sd, &MalformedSubdatasetError{Name: name, Reason: "unterminated quoted path"}
		}
		prefix := strings.Split(strings.TrimSuffix(name[:open], ":"), ":")
		suffix := strings.Split(strings.TrimPrefix(name[closing+1:], ":"), ":")
		if len(prefix) != 2 || !strings.HasSuffix(name[:open], ":") {
			return sd, &MalformedSubdatasetError{Name: name, Reason: "expected DRIVER:KIND before the path"}
		}
		if len(suffix) != 2 || !strings.HasPrefix(name[closing+1:], ":") {
			return sd, &MalformedSubdatasetError{Name: name, Reason: "expected :SWATH:FIELD after the path"}
		}
		sd.Driver, sd.Kind = prefix[0], prefix[1]
		sd.Path = name[open+1 : closing]
		sd.Swath, sd.Field = suffix[0], suffix[1]
	} else {
		parts := strings.Split(name, ":")
		if len(parts) < minSubdatasetSegments {
			return sd, &MalformedSubdatasetError{Name: name, Reason: "too few segments"}
		}
		n := len(parts)
		sd.Driver, sd.Kind = parts[0], parts[1]
		sd.Path = strings.Join(parts[2:n-2], ":")
		sd.Swath, sd.Field = parts[n-2], parts[n-1]
	}

	for _, seg := range []struct{ name, value string }{
		{"driver", sd.Driver},
		{"kind", sd.Kind},
		{"path", sd.Path},
		{"swath", sd.Swath},
		{"field", sd.Field},
	} {
		if strings.TrimSpace(seg.value) == "" {
			return sd, &MalformedSubdatasetError{Name: name, Reason: "empty " + seg.name}
		}
	}
	return sd, nil
}

// OutputName is the GeoTIFF file name for this subdataset within a granule.
func (s Subdataset) OutputName(granuleID string) string {
	return granuleID + "_" + s.Swath + "_" + s.Field + ".tif"
}
