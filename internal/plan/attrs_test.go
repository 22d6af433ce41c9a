package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource() ResourceChange {
	return ResourceChange{
		Address: "compute-node-group.workers",
		Type:    TypeComputeNodeGroup,
		Name:    "workers",
		Attributes: map[string]interface{}{
			"capacityType": "spot",
			"encrypted":    true,
			"maxReplicas":  float64(10),
			"instanceTypes": []interface{}{
				"m5.xlarge", "m5.2xlarge",
			},
			"resources": map[string]interface{}{
				"requests": map[string]interface{}{
					"cpu": "2",
				},
			},
		},
	}
}

func TestStringAttr(t *testing.T) {
	rc := testResource()

	v, found, err := rc.StringAttr("capacityType")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "spot", v)

	_, found, err = rc.StringAttr("absent")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = rc.StringAttr("maxReplicas")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestBoolAttr(t *testing.T) {
	rc := testResource()

	v, found, err := rc.BoolAttr("encrypted")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v)

	_, _, err = rc.BoolAttr("capacityType")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestFloatAttr(t *testing.T) {
	rc := testResource()

	v, found, err := rc.FloatAttr("maxReplicas")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, float64(10), v)

	_, found, err = rc.FloatAttr("minReplicas")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = rc.FloatAttr("capacityType")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestFloatAttr_NonFinite(t *testing.T) {
	rc := ResourceChange{Attributes: map[string]interface{}{
		"maxReplicas":      math.NaN(),
		"acceleratorCount": math.Inf(1),
	}}

	_, _, err := rc.FloatAttr("maxReplicas")
	assert.ErrorIs(t, err, ErrWrongType)

	_, _, err = rc.FloatAttr("acceleratorCount")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestNestedPaths(t *testing.T) {
	rc := testResource()

	v, found, err := rc.StringAttr("resources", "requests", "cpu")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v)

	raw, ok := rc.RawAttr("resources", "requests", "cpu")
	assert.True(t, ok)
	assert.Equal(t, "2", raw)

	_, ok = rc.RawAttr("resources", "limits", "cpu")
	assert.False(t, ok)
}

func TestStringSliceAttr(t *testing.T) {
	rc := testResource()

	v, found, err := rc.StringSliceAttr("instanceTypes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"m5.xlarge", "m5.2xlarge"}, v)

	_, _, err = rc.StringSliceAttr("capacityType")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestMapAttr(t *testing.T) {
	rc := testResource()

	v, found, err := rc.MapAttr("resources", "requests")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v["cpu"])

	_, found, err = rc.MapAttr("absent")
	require.NoError(t, err)
	assert.False(t, found)
}
