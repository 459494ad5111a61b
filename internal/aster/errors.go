package aster

import "fmt"

// MissingAttributeError is returned when a required granule attribute is absent.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing granule attribute %s", e.Key)
}

// MalformedAttributeError is returned when an attribute is present but cannot be read.
type MalformedAttributeError struct {
	Key   string
	Value string
	Err   error
}

func (e *MalformedAttributeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed granule attribute %s=%q: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed granule attribute %s=%q", e.Key, e.Value)
}

func (e *MalformedAttributeError) Unwrap() error {
	return e.Err
}

type MalformedSubdatasetError struct {
	Name   string
	Reason string
}

func (e *MalformedSubdatasetError) Error() string {
	return fmt.Sprintf("malformed subdataset %q: %s", e.Name, e.Reason)
}

// UnknownBandClassError is returned for a subdataset that is neither VNIR, SWIR nor TIR.
type UnknownBandClassError struct {
	Name string
}

func (e *UnknownBandClassError) Error() string {
	return fmt.Sprintf("unknown band class for %q", e.Name)
}
