// Package plan models the change document submitted for evaluation: the set
// of proposed or live resources exported from a provisioning plan or a
// workload manifest, as typed records over untyped attribute maps.
package plan

import "strings"

// Well-known resource types the rule catalog governs. Anything else passes
// through evaluation unselected.
const (
	TypeComputeNodeGroup = "compute-node-group"
	TypeManagedCluster   = "managed-cluster"
	TypeLaunchProfile    = "launch-profile"
	TypeStorageVolume    = "storage-volume"
)

// ResourceChange is one planned or observed resource. Attributes is the
// post-change configuration as decoded JSON/YAML; it is never mutated after
// construction, the engine only reads it.
type ResourceChange struct {
	Address    string
	Type       string
	Name       string
	Attributes map[string]interface{}
}

// Document is the immutable input to one evaluation. Resource order is
// irrelevant to the result set but preserved so findings are emitted in a
// stable order.
type Document struct {
	ResourceChanges []ResourceChange
	Variables       map[string]interface{}
}

// OfType returns the resource changes whose Type matches any of the given
// types, in document order.
func (d *Document) OfType(types ...string) []ResourceChange {
	var out []ResourceChange
	for _, rc := range d.ResourceChanges {
		for _, t := range types {
			if rc.Type == t {
				out = append(out, rc)
				break
			}
		}
	}
	return out
}

// StringVariable returns the document-wide variable with the given name,
// or "" if absent or not a string.
func (d *Document) StringVariable(name string) string {
	v, ok := d.Variables[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GPURole reports whether the resource's name marks it as an
// accelerator-bearing group, by the platform's naming convention.
func (rc ResourceChange) GPURole() bool {
	return strings.Contains(strings.ToLower(rc.Name), "gpu")
}

// CPURole reports whether the resource is a plain compute group. Groups are
// CPU-role unless their name marks them as GPU-role.
func (rc ResourceChange) CPURole() bool {
	return !rc.GPURole()
}
