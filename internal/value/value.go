// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package value converts raw config values between the native representation
// of a file format and the type a schema field declares.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ManuGH/gameconf/internal/schema"
)

// Kind is the Go type a field value is coerced into.
type Kind int

const (
	// KindNone leaves values untouched.
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	// KindNumber is an integer when the raw value parses as one, a float otherwise.
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNumber:
		return "number"
	default:
		return "none"
	}
}

var truthy = map[string]bool{"true": true, "1": true, "yes": true, "on": true}

// KindOf derives the coercion target of a field. A typed default (bool, int,
// float) wins; otherwise the declared field type decides.
func KindOf(f *schema.Field) Kind {
	if f.IsNested() {
		return KindNone
	}
	switch Normalize(f.Default).(type) {
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	}
	switch f.FieldType() {
	case schema.TypeBoolean:
		return KindBool
	case schema.TypeNumber:
		return KindNumber
	}
	return KindNone
}

// Coerce converts raw into the field's kind. Values that already carry the
// right native type pass through. On failure the raw value is returned along
// with the error so callers can keep it.
func Coerce(f *schema.Field, raw any) (any, error) {
	v := Normalize(raw)
	if fl, ok := v.(float64); ok && !isFinite(fl) {
		// Native NaN or Inf from YAML or TOML is kept as its text.
		raw = Format(fl)
		v = raw
	}
	switch KindOf(f) {
	case KindBool:
		return ToBool(v), nil
	case KindInt:
		i, err := ToInt(v)
		if err != nil {
			return raw, err
		}
		return i, nil
	case KindFloat:
		fl, err := ToFloat(v)
		if err != nil {
			return raw, err
		}
		return fl, nil
	case KindNumber:
		if i, err := ToInt(v); err == nil {
			return i, nil
		}
		fl, err := ToFloat(v)
		if err != nil {
			return raw, err
		}
		return fl, nil
	}
	return v, nil
}

// Normalize folds the numeric types produced by the various decoders into
// int64 and float64. json.Number becomes int64 when integral.
func Normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return float64(n)
		}
		return int64(n)
	case float32:
		return float64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// ToBool reports whether v is true or one of "true", "1", "yes", "on" (any case).
func ToBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return truthy[strings.ToLower(strings.TrimSpace(Format(v)))]
}

// ToInt converts v to a base-10 integer.
func ToInt(v any) (int64, error) {
	switch n := Normalize(v).(type) {
	case int64:
		return n, nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n), nil
		}
		return 0, fmt.Errorf("%v is not an integer", n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse int %q: %w", n, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert %T to int", v)
}

// ToFloat converts v to a float. NaN and infinities are rejected.
func ToFloat(v any) (float64, error) {
	switch n := Normalize(v).(type) {
	case float64:
		if !isFinite(n) {
			return 0, fmt.Errorf("%v is not a finite number", n)
		}
		return n, nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("parse float %q: %w", n, err)
		}
		if !isFinite(f) {
			return 0, fmt.Errorf("parse float %q: not a finite number", n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert %T to float", v)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Format renders a scalar the way text formats store it: booleans as
// "true"/"false", numbers in canonical decimal, strings verbatim.
func Format(v any) string {
	switch n := Normalize(v).(type) {
	case nil:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(n)
	}
}

// FormatField renders v for f. Boolean fields always become "true"/"false".
func FormatField(f *schema.Field, v any) string {
	if f != nil && f.FieldType() == schema.TypeBoolean {
		if _, isString := v.(string); !isString {
			return strconv.FormatBool(ToBool(v))
		}
	}
	return Format(v)
}
