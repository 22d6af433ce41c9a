package plan

import (
	"errors"
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ErrWrongType is returned when an attribute exists but holds a value of an
// unexpected type. Rules translate it into a blocking finding rather than
// skipping the check.
var ErrWrongType = errors.New("attribute has wrong type")

// StringAttr returns the string at the given attribute path.
func (rc ResourceChange) StringAttr(fields ...string) (string, bool, error) {
	v, found, err := unstructured.NestedString(rc.Attributes, fields...)
	if err != nil {
		return "", false, wrongType(err, fields)
	}
	return v, found, nil
}

// BoolAttr returns the bool at the given attribute path.
func (rc ResourceChange) BoolAttr(fields ...string) (bool, bool, error) {
	v, found, err := unstructured.NestedBool(rc.Attributes, fields...)
	if err != nil {
		return false, false, wrongType(err, fields)
	}
	return v, found, nil
}

// FloatAttr returns the number at the given attribute path. Integer values
// are widened; any other type, and non-finite floats (a YAML .nan compares
// false against every threshold), is ErrWrongType.
func (rc ResourceChange) FloatAttr(fields ...string) (float64, bool, error) {
	raw, found, err := unstructured.NestedFieldNoCopy(rc.Attributes, fields...)
	if err != nil {
		return 0, false, wrongType(err, fields)
	}
	if !found {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false, wrongType(fmt.Errorf("non-finite value"), fields)
		}
		return n, true, nil
	case int64:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	}
	return 0, false, wrongType(fmt.Errorf("%T is not a number", raw), fields)
}

// RawAttr returns the untyped value at the given attribute path. Used where
// a rule accepts more than one representation (e.g. a quantity that may be a
// string or a number).
func (rc ResourceChange) RawAttr(fields ...string) (interface{}, bool) {
	v, found, err := unstructured.NestedFieldNoCopy(rc.Attributes, fields...)
	if err != nil || !found {
		return nil, false
	}
	return v, true
}

// StringSliceAttr returns the []string at the given attribute path.
func (rc ResourceChange) StringSliceAttr(fields ...string) ([]string, bool, error) {
	v, found, err := unstructured.NestedStringSlice(rc.Attributes, fields...)
	if err != nil {
		return nil, false, wrongType(err, fields)
	}
	return v, found, nil
}

// SliceAttr returns the untyped slice at the given attribute path.
func (rc ResourceChange) SliceAttr(fields ...string) ([]interface{}, bool, error) {
	v, found, err := unstructured.NestedSlice(rc.Attributes, fields...)
	if err != nil {
		return nil, false, wrongType(err, fields)
	}
	return v, found, nil
}

// MapAttr returns the nested map at the given attribute path.
func (rc ResourceChange) MapAttr(fields ...string) (map[string]interface{}, bool, error) {
	v, found, err := unstructured.NestedMap(rc.Attributes, fields...)
	if err != nil {
		return nil, false, wrongType(err, fields)
	}
	return v, found, nil
}

func wrongType(err error, fields []string) error {
	return fmt.Errorf("%w at %v: %v", ErrWrongType, fields, err)
}
