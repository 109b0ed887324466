// Package jsonx provides JSON helpers for the dashboard document.
package jsonx

import (
	"math"
	"strconv"
)

// Float is a float64 that marshals to JSON null when non-finite. Divisions
// over empty groups can surface NaN or ±Inf, which strict JSON cannot
// represent; null is the documented stand-in.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes as zero.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Round returns v rounded to the given number of decimal places as a Float,
// preserving non-finite values so they marshal as null rather than
// rounding into garbage.
func Round(v float64, decimals int) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float(v)
	}
	pow := math.Pow(10, float64(decimals))
	return Float(math.Round(v*pow) / pow)
}
