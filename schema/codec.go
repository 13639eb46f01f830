package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Scalar lists the value types a descriptor can hold.
type Scalar interface {
	int | float64 | bool | string
}

type codec[T Scalar] struct {
	typ    string
	parse  func(string) (T, error)
	format func(T) string
	coerce func(any) (T, bool)
}

var intCodec = codec[int]{
	typ: "integer",
	parse: func(s string) (int, error) {
		s = strings.TrimSpace(s)
		if v, err := strconv.Atoi(s); err == nil {
			return v, nil
		}
		// some producers write integral numbers as "3.0"
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f != math.Trunc(f) {
			return 0, errors.Errorf("%q is not an integer", s)
		}
		// float64 cannot hold MaxInt, so its upper bound is exclusive
		if f < math.MinInt || f >= math.MaxInt {
			return 0, errors.Errorf("%q is out of the integer range", s)
		}
		return int(f), nil
	},
	format: strconv.Itoa,
	coerce: func(v any) (int, bool) {
		switch x := v.(type) {
		case int:
			return x, true
		case int32:
			return int(x), true
		case int64:
			return int(x), true
		}
		return 0, false
	},
}

var floatCodec = codec[float64]{
	typ: "float",
	parse: func(s string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, errors.Errorf("%q is not a number", s)
		}
		return f, nil
	},
	format: func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) },
	coerce: func(v any) (float64, bool) {
		switch x := v.(type) {
		case float64:
			return x, true
		case float32:
			return float64(x), true
		case int:
			return float64(x), true
		case int64:
			return float64(x), true
		}
		return 0, false
	},
}

var boolCodec = codec[bool]{
	typ: "boolean",
	parse: func(s string) (bool, error) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "t", "on":
			return true, nil
		case "0", "false", "f", "off":
			return false, nil
		}
		return false, errors.Errorf("%q is not a boolean", s)
	},
	format: func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	},
	coerce: func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	},
}

var stringCodec = codec[string]{
	typ:    "string",
	parse:  func(s string) (string, error) { return s, nil },
	format: func(s string) string { return s },
	coerce: func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	},
}

func codecFor[T Scalar]() codec[T] {
	var c any
	var zero T
	switch any(zero).(type) {
	case int:
		c = intCodec
	case float64:
		c = floatCodec
	case bool:
		c = boolCodec
	case string:
		c = stringCodec
	}
	return c.(codec[T])
}
