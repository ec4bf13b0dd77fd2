package metar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Unit names the unit of measure attached to a Quantity. The strings are the
// wire names used in the JSON output.
type Unit string

const (
	UnitDegreeTrue     Unit = "degT"
	UnitKnot           Unit = "kt"
	UnitMetrePerSecond Unit = "m/s"
	UnitMetre          Unit = "m"
	UnitStatuteMile    Unit = "mi"
	UnitFoot           Unit = "ft"
	UnitDegreeCelsius  Unit = "degC"
	UnitHectopascal    Unit = "hPa"
	UnitInchOfMercury  Unit = "inHg"
)

// ValueKind tags the variants of Value.
type ValueKind string

const (
	ValueExact      ValueKind = "exact"
	ValueAbove      ValueKind = "above"
	ValueBelow      ValueKind = "below"
	ValueVariable   ValueKind = "variable"
	ValueRange      ValueKind = "range"
	ValueUnlimited  ValueKind = "unlimited"
	ValueIndefinite ValueKind = "indefinite"
)

// Value is a measured value that may be exact, an open bound (above/below),
// variable with no usable number, or a range between two bounds. Range
// operands are never ranges themselves. The unlimited and indefinite kinds
// are only produced for the derived cloud ceiling.
type Value struct {
	Kind ValueKind
	Num  float64 // exact, above, below
	Lo   *Value  // range only
	Hi   *Value  // range only
}

func Exact(v float64) Value { return Value{Kind: ValueExact, Num: v} }
func Above(v float64) Value { return Value{Kind: ValueAbove, Num: v} }
func Below(v float64) Value { return Value{Kind: ValueBelow, Num: v} }
func VariableValue() Value  { return Value{Kind: ValueVariable} }

func RangeValue(lo, hi Value) Value {
	return Value{Kind: ValueRange, Lo: &lo, Hi: &hi}
}

// Scale multiplies the numeric content by f, recursing into range bounds.
func (v Value) Scale(f float64) Value {
	switch v.Kind {
	case ValueExact, ValueAbove, ValueBelow:
		v.Num *= f
	case ValueRange:
		lo := v.Lo.Scale(f)
		hi := v.Hi.Scale(f)
		v.Lo, v.Hi = &lo, &hi
	}
	return v
}

// MarshalJSON writes the tagged wire form {"value_type": ..., "value": ...}.
// The variable, unlimited and indefinite kinds carry no value key; a range
// carries its two bounds as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueExact, ValueAbove, ValueBelow:
		return json.Marshal(struct {
			Type  ValueKind `json:"value_type"`
			Value float64   `json:"value"`
		}{v.Kind, v.Num})
	case ValueRange:
		return json.Marshal(struct {
			Type  ValueKind `json:"value_type"`
			Value [2]Value  `json:"value"`
		}{v.Kind, [2]Value{*v.Lo, *v.Hi}})
	default:
		return json.Marshal(struct {
			Type ValueKind `json:"value_type"`
		}{v.Kind})
	}
}

// Quantity attaches a unit of measure to a Value.
type Quantity struct {
	Value Value
	Units Unit
}

func NewQuantity(v Value, u Unit) *Quantity {
	return &Quantity{Value: v, Units: u}
}

// MarshalJSON flattens the value's tagged form and appends the units key.
func (q Quantity) MarshalJSON() ([]byte, error) {
	switch q.Value.Kind {
	case ValueExact, ValueAbove, ValueBelow:
		return json.Marshal(struct {
			Type  ValueKind `json:"value_type"`
			Value float64   `json:"value"`
			Units Unit      `json:"units"`
		}{q.Value.Kind, q.Value.Num, q.Units})
	case ValueRange:
		return json.Marshal(struct {
			Type  ValueKind `json:"value_type"`
			Value [2]Value  `json:"value"`
			Units Unit      `json:"units"`
		}{q.Value.Kind, [2]Value{*q.Value.Lo, *q.Value.Hi}, q.Units})
	default:
		return json.Marshal(struct {
			Type  ValueKind `json:"value_type"`
			Units Unit      `json:"units"`
		}{q.Value.Kind, q.Units})
	}
}

// parseNumber parses a plain number, a fraction like "3/4" or a mixed
// fraction like "1 1/2".
func parseNumber(s string) (float64, error) {
	whole := 0.0
	if before, after, found := strings.Cut(s, " "); found {
		w, err := strconv.ParseFloat(before, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", s, err)
		}
		whole = w
		s = after
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid fraction %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid fraction %q", s)
		}
		return whole + n/d, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return whole + n, nil
}

// parseBound parses one side of a range: an exact number or a P/M-prefixed
// open bound, never a nested range.
func parseBound(s string) (Value, error) {
	if rest, ok := strings.CutPrefix(s, "P"); ok {
		n, err := parseNumber(rest)
		if err != nil {
			return Value{}, err
		}
		return Above(n), nil
	}
	if rest, ok := strings.CutPrefix(s, "M"); ok {
		n, err := parseNumber(rest)
		if err != nil {
			return Value{}, err
		}
		return Below(n), nil
	}
	n, err := parseNumber(s)
	if err != nil {
		return Value{}, err
	}
	return Exact(n), nil
}

// ParseValue parses a group value: VRB, P (above) and M (below) prefixes,
// V-separated ranges and plain or fractional numbers.
func ParseValue(s string) (Value, error) {
	if s == "VRB" {
		return VariableValue(), nil
	}
	if lo, hi, found := strings.Cut(s, "V"); found {
		loV, err := parseBound(lo)
		if err != nil {
			return Value{}, err
		}
		hiV, err := parseBound(hi)
		if err != nil {
			return Value{}, err
		}
		return RangeValue(loV, hiV), nil
	}
	return parseBound(s)
}
