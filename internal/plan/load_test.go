package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planExport = `{
  "resource_changes": [
    {
      "address": "aws_eks_node_group.gpu_workers",
      "type": "aws_eks_node_group",
      "name": "gpu-workers",
      "change": {
        "after": {
          "instanceTypes": ["g4dn.xlarge"],
          "maxReplicas": 4
        }
      }
    },
    {
      "address": "aws_eks_node_group.retired",
      "type": "aws_eks_node_group",
      "name": "retired",
      "change": {"after": null}
    }
  ],
  "variables": {
    "region": {"value": "us-west-2"},
    "owner": "ml-platform"
  }
}`

const flatManifest = `
resources:
  - address: compute-node-group.cpu-workers
    type: compute-node-group
    name: cpu-workers
    attributes:
      desiredSize: 3
  - address: storage-volume.scratch
    type: storage-volume
    name: scratch
variables:
  region: eu-west-1
`

func TestLoad_PlanExport(t *testing.T) {
	doc, err := Load([]byte(planExport))
	require.NoError(t, err)

	// The destroyed resource (after == null) is dropped.
	require.Len(t, doc.ResourceChanges, 1)

	rc := doc.ResourceChanges[0]
	assert.Equal(t, "aws_eks_node_group.gpu_workers", rc.Address)
	assert.Equal(t, TypeComputeNodeGroup, rc.Type, "provider type is aliased")
	assert.Equal(t, "gpu-workers", rc.Name)

	types, found, err := rc.StringSliceAttr("instanceTypes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"g4dn.xlarge"}, types)

	// Variable envelopes are unwrapped; plain scalars pass through.
	assert.Equal(t, "us-west-2", doc.StringVariable("region"))
	assert.Equal(t, "ml-platform", doc.StringVariable("owner"))
}

func TestLoad_FlatManifest(t *testing.T) {
	doc, err := Load([]byte(flatManifest))
	require.NoError(t, err)

	require.Len(t, doc.ResourceChanges, 2)
	assert.Equal(t, TypeComputeNodeGroup, doc.ResourceChanges[0].Type)
	assert.NotNil(t, doc.ResourceChanges[1].Attributes, "missing attributes block becomes an empty map")
	assert.Equal(t, "eu-west-1", doc.StringVariable("region"))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a document", input: `[1, 2, 3]`},
		{name: "missing address", input: `{"resources": [{"type": "compute-node-group", "name": "x"}]}`},
		{
			name: "duplicate address",
			input: `{"resources": [
				{"address": "a", "type": "compute-node-group", "name": "x"},
				{"address": "a", "type": "compute-node-group", "name": "y"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(planExport), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.ResourceChanges, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
