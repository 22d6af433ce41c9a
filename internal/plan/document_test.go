package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfType(t *testing.T) {
	doc := &Document{ResourceChanges: []ResourceChange{
		{Address: "a", Type: TypeComputeNodeGroup},
		{Address: "b", Type: TypeStorageVolume},
		{Address: "c", Type: TypeComputeNodeGroup},
		{Address: "d", Type: "unrelated-resource"},
	}}

	groups := doc.OfType(TypeComputeNodeGroup)
	assert.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Address)
	assert.Equal(t, "c", groups[1].Address)

	both := doc.OfType(TypeComputeNodeGroup, TypeStorageVolume)
	assert.Len(t, both, 3)

	assert.Empty(t, doc.OfType(TypeLaunchProfile))
}

func TestRoles(t *testing.T) {
	tests := []struct {
		name    string
		gpuRole bool
	}{
		{name: "gpu-workers", gpuRole: true},
		{name: "training-GPU-pool", gpuRole: true},
		{name: "cpu-workers", gpuRole: false},
		{name: "general", gpuRole: false},
		{name: "", gpuRole: false},
	}

	for _, tt := range tests {
		rc := ResourceChange{Name: tt.name}
		assert.Equal(t, tt.gpuRole, rc.GPURole(), tt.name)
		assert.Equal(t, !tt.gpuRole, rc.CPURole(), tt.name)
	}
}

func TestStringVariable(t *testing.T) {
	doc := &Document{Variables: map[string]interface{}{
		"region": "us-west-2",
		"count":  float64(3),
	}}

	assert.Equal(t, "us-west-2", doc.StringVariable("region"))
	assert.Equal(t, "", doc.StringVariable("count"))
	assert.Equal(t, "", doc.StringVariable("absent"))
}
