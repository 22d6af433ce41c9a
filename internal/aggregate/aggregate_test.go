package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
)

func group(address string, attrs map[string]interface{}) plan.ResourceChange {
	return plan.ResourceChange{
		Address:    address,
		Type:       plan.TypeComputeNodeGroup,
		Name:       address,
		Attributes: attrs,
	}
}

func maxReplicas(rc plan.ResourceChange) (float64, bool, error) {
	return rc.FloatAttr("maxReplicas")
}

func TestSum(t *testing.T) {
	resources := []plan.ResourceChange{
		group("a", map[string]interface{}{"maxReplicas": float64(10)}),
		group("b", map[string]interface{}{"maxReplicas": float64(5)}),
		group("c", map[string]interface{}{}), // nothing to contribute
	}

	total, errs := Sum(resources, maxReplicas)
	require.Empty(t, errs)
	assert.Equal(t, float64(15), total)
}

func TestSum_ExtractionError(t *testing.T) {
	resources := []plan.ResourceChange{
		group("a", map[string]interface{}{"maxReplicas": float64(10)}),
		group("b", map[string]interface{}{"maxReplicas": "ten"}),
	}

	total, errs := Sum(resources, maxReplicas)
	assert.Equal(t, float64(10), total, "failing resource is excluded from the total")
	require.Len(t, errs, 1)
	assert.Equal(t, "b", errs[0].Address)
	assert.ErrorIs(t, errs[0].Err, plan.ErrWrongType)
}

func TestSum_Empty(t *testing.T) {
	total, errs := Sum(nil, maxReplicas)
	assert.Zero(t, total)
	assert.Empty(t, errs)
}

func TestCount(t *testing.T) {
	resources := []plan.ResourceChange{
		group("gpu-a", nil),
		group("cpu-b", nil),
		group("gpu-c", nil),
	}
	n := Count(resources, func(rc plan.ResourceChange) bool {
		return rc.GPURole()
	})
	assert.Equal(t, 2, n)
}

func TestProduct(t *testing.T) {
	extract := Product(maxReplicas, func(rc plan.ResourceChange) (float64, bool, error) {
		return rc.FloatAttr("acceleratorCount")
	})

	v, found, err := extract(group("a", map[string]interface{}{
		"maxReplicas":      float64(4),
		"acceleratorCount": float64(8),
	}))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, float64(32), v)

	// Missing factor: product not found, no error.
	_, found, err = extract(group("b", map[string]interface{}{
		"maxReplicas": float64(4),
	}))
	require.NoError(t, err)
	assert.False(t, found)

	// Failing factor: product fails.
	_, _, err = extract(group("c", map[string]interface{}{
		"maxReplicas":      float64(4),
		"acceleratorCount": "eight",
	}))
	assert.Error(t, err)
}

func TestSum_Monotonic(t *testing.T) {
	base := []plan.ResourceChange{
		group("a", map[string]interface{}{"maxReplicas": float64(10)}),
	}
	before, errs := Sum(base, maxReplicas)
	require.Empty(t, errs)

	grown := append(base, group("b", map[string]interface{}{"maxReplicas": float64(1)}))
	after, errs := Sum(grown, maxReplicas)
	require.Empty(t, errs)

	assert.GreaterOrEqual(t, after, before, "adding a qualifying resource never lowers the aggregate")
	assert.Equal(t, float64(11), after)
}
