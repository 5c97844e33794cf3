package style

import (
	"fmt"
	"strconv"
)

// Value is a plain property value: either text used verbatim or a number which
// gets a unit during normalization.
type Value struct {
	text    string
	num     float64
	numeric bool
}

// String makes textual value.
func String(s string) Value {
	return Value{text: s}
}

// Number makes numeric value.
func Number(n float64) Value {
	return Value{num: n, numeric: true}
}

// ValueOf converts Go value to Value. Supported are strings, all integer and
// float kinds and Value itself, anything else is a programming error.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	default:
		panic(fmt.Sprintf("unsupported style value type %T", v))
	}
}

// IsNumber reports whether value is numeric.
func (v Value) IsNumber() bool {
	return v.numeric
}

// Float returns numeric value, zero for text.
func (v Value) Float() float64 {
	return v.num
}

// String returns value as written, numbers without unit.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Prop is a single plain property.
type Prop struct {
	Key   string
	Value Value
}

// Map is an ordered list of plain properties, result of dynamic callbacks.
type Map []Prop

// Set replaces value of existing key or appends a new one.
func (m Map) Set(key string, value any) Map {
	v := ValueOf(value)
	for i := range m {
		if m[i].Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Prop{Key: key, Value: v})
}

// Get returns value for a key.
func (m Map) Get(key string) (Value, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}
