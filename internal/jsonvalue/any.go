// Package jsonvalue adapts data sources to viewer.Value.
package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"jsonview/internal/viewer"
)

// Any is a viewer.Value over the result of encoding/json decoding into an
// interface{}: nil, bool, float64, json.Number, string, []any and
// map[string]any. Other types are shown with fmt's %v.
type Any struct {
	V any
}

// FromAny wraps a decoded Go value.
func FromAny(v any) viewer.Value {
	return Any{V: v}
}

// Visit implements viewer.Value.
func (a Any) Visit() viewer.Variant {
	switch v := a.V.(type) {
	case nil:
		return viewer.Scalar("null")
	case bool:
		return viewer.Scalar(strconv.FormatBool(v))
	case float64:
		return viewer.Scalar(formatFloat(v, 64))
	case float32:
		return viewer.Scalar(formatFloat(float64(v), 32))
	case json.Number:
		return viewer.Scalar(v.String())
	case string:
		return viewer.Scalar(v)
	case []any:
		elems := make([]viewer.Value, len(v))
		for i, e := range v {
			elems[i] = Any{V: e}
		}
		return viewer.Array(elems...)
	case map[string]any:
		members := make([]viewer.Member, 0, len(v))
		for k, e := range v {
			members = append(members, viewer.Member{Key: k, Value: Any{V: e}})
		}
		return viewer.Map(members...)
	case viewer.Value:
		return v.Visit()
	default:
		return viewer.Scalar(fmt.Sprintf("%v", v))
	}
}

// formatFloat spells f the way encoding/json does: plain decimals, switching
// to an exponent below 1e-6 and from 1e21 on.
func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	fmtByte := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmtByte = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, fmtByte, -1, bits)
	if fmtByte == 'e' {
		// e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
