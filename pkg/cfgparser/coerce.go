package cfgparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeybbq/cfgparser/pkg/cfgerrors"
)

// Scalar enumerates the types a raw value string can be coerced into.
// Strings are excluded on purpose: use GetString.
type Scalar interface {
	bool | int | int32 | int64 | uint32 | uint64 | float32 | float64
}

// Get resolves the value with GetString semantics and coerces it. A
// missing or empty value yields the default without error. A numeric
// parse failure is the one failure mode that reaches the caller instead
// of the diagnostic sink.
func Get[T Scalar](c *Config, section, key string, defaultValue T) (T, error) {
	raw := c.GetString(section, key, "")
	if raw == "" {
		return defaultValue, nil
	}
	return fromString[T](raw)
}

// GetArray splits the raw value on literal commas and coerces every
// segment in order. Whitespace is not trimmed and the last segment is
// always included. A missing or empty value yields an empty result.
func GetArray[T Scalar](c *Config, section, key string) ([]T, error) {
	raw := c.GetString(section, key, "")
	if raw == "" {
		return nil, nil
	}
	segments := strings.Split(raw, ",")
	result := make([]T, 0, len(segments))
	for _, segment := range segments {
		value, err := fromString[T](segment)
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

// Set formats value and replaces the raw string of an existing
// (section, key) pair, with SetString semantics.
func Set[T Scalar](c *Config, section, key string, value T) {
	c.SetString(section, key, formatScalar(value))
}

// fromString coerces one raw segment. Booleans follow the format's rule:
// exactly "true", "on" or "yes" mean true, anything else means false,
// never an error.
func fromString[T Scalar](raw string) (T, error) {
	var result T
	var err error

	switch p := any(&result).(type) {
	case *bool:
		*p = raw == "true" || raw == "on" || raw == "yes"
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int32:
		var v int64
		v, err = strconv.ParseInt(raw, 10, 32)
		*p = int32(v)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *uint32:
		var v uint64
		v, err = strconv.ParseUint(raw, 10, 32)
		*p = uint32(v)
	case *uint64:
		*p, err = strconv.ParseUint(raw, 10, 64)
	case *float32:
		var v float64
		v, err = strconv.ParseFloat(raw, 32)
		*p = float32(v)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	}

	if err != nil {
		var zero T
		return zero, cfgerrors.New(cfgerrors.KindCoerce, fmt.Errorf("value %q: %w", raw, err))
	}
	return result, nil
}

func formatScalar[T Scalar](value T) string {
	switch v := any(value).(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
