// Package quantity parses unit-suffixed resource quantities into canonical
// base units: CPU as cores, memory as gibibytes.
//
// The grammar is deliberately narrower than the Kubernetes quantity grammar.
// CPU accepts plain decimals (cores) or an integer with a trailing "m"
// (millicores). Memory accepts plain decimals (bytes) or a binary-prefix
// suffix (Ki, Mi, Gi, Ti). Decimal SI suffixes (K, M, G, KB, ...) are
// rejected: the node-group templates this engine governs only ever emit
// binary units, and silently accepting a 1000-based "10G" where "10Gi" was
// meant would shift thresholds by 7%.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a value cannot be parsed as a quantity.
// Callers should treat it as a blocking condition, not skip the check.
var ErrMalformed = errors.New("malformed quantity")

const (
	bytesPerKi  = float64(1 << 10)
	bytesPerMi  = float64(1 << 20)
	bytesPerGiB = float64(1 << 30)
	bytesPerTi  = float64(1 << 40)
)

var binarySuffixes = []struct {
	text  string
	bytes float64
}{
	{"Ki", bytesPerKi},
	{"Mi", bytesPerMi},
	{"Gi", bytesPerGiB},
	{"Ti", bytesPerTi},
}

// HasBinarySuffix reports whether s ends in one of the binary suffixes
// ParseMemory accepts.
func HasBinarySuffix(s string) bool {
	s = strings.TrimSpace(s)
	for _, suffix := range binarySuffixes {
		if strings.HasSuffix(s, suffix.text) {
			return true
		}
	}
	return false
}

// ParseCPU converts a CPU request attribute to cores.
//
// Accepted forms: a numeric attribute value (cores), a decimal string
// ("2", "0.5"), or an integer string with a trailing "m" ("1500m" = 1.5).
// Negative values parse successfully; rules decide whether they are legal.
func ParseCPU(v interface{}) (float64, error) {
	if f, ok := numeric(v); ok {
		if !isFinite(f) {
			return 0, fmt.Errorf("%w: non-finite value", ErrMalformed)
		}
		return f, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported type %T", ErrMalformed, v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrMalformed)
	}

	if strings.HasSuffix(s, "m") {
		milli, err := strconv.ParseInt(strings.TrimSuffix(s, "m"), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		return float64(milli) / 1000, nil
	}

	cores, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(cores) {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return cores, nil
}

// ParseMemory converts a memory request attribute to gibibytes.
//
// Accepted forms: a numeric attribute value or a bare decimal string
// (bytes), or a decimal string with a binary suffix Ki, Mi, Gi or Ti.
// Decimal SI suffixes are a format error.
func ParseMemory(v interface{}) (float64, error) {
	if f, ok := numeric(v); ok {
		if !isFinite(f) {
			return 0, fmt.Errorf("%w: non-finite value", ErrMalformed)
		}
		return f / bytesPerGiB, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported type %T", ErrMalformed, v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrMalformed)
	}

	multiplier := 1.0
	numeral := s
	for _, suffix := range binarySuffixes {
		if strings.HasSuffix(s, suffix.text) {
			multiplier = suffix.bytes
			numeral = strings.TrimSuffix(s, suffix.text)
			break
		}
	}

	value, err := strconv.ParseFloat(numeral, 64)
	if err != nil || !isFinite(value) {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return value * multiplier / bytesPerGiB, nil
}

// FormatCPU renders cores in the canonical form accepted by ParseCPU:
// whole-millicore fractions as "Nm", everything else as a plain decimal.
func FormatCPU(cores float64) string {
	milli := cores * 1000
	if milli == math.Trunc(milli) && cores != math.Trunc(cores) {
		return strconv.FormatInt(int64(milli), 10) + "m"
	}
	return strconv.FormatFloat(cores, 'f', -1, 64)
}

// FormatGiB renders gibibytes in the canonical form accepted by ParseMemory.
func FormatGiB(gib float64) string {
	return strconv.FormatFloat(gib, 'f', -1, 64) + "Gi"
}

// isFinite reports whether f is an ordinary number. ParseFloat accepts the
// "NaN" and "Inf" spellings, and a NaN quantity compares false against every
// threshold, so non-finite values must be a format error.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// numeric unwraps the number types a decoded JSON/YAML document can carry.
func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
