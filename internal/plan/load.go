package plan

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// loadEnvelope accepts both document shapes the platform exports: the
// provisioning-plan export (resource_changes with a change.after block,
// Terraform convention) and the flat engine-native shape (resources with an
// attributes block, used when serializing a running workload).
type loadEnvelope struct {
	ResourceChanges []planResourceChange   `json:"resource_changes"`
	Resources       []flatResource         `json:"resources"`
	Variables       map[string]interface{} `json:"variables"`
}

type planResourceChange struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Change  struct {
		After map[string]interface{} `json:"after"`
	} `json:"change"`
}

type flatResource struct {
	Address    string                 `json:"address"`
	Type       string                 `json:"type"`
	Name       string                 `json:"name"`
	Attributes map[string]interface{} `json:"attributes"`
}

// typeAliases maps provider resource types in plan exports onto the
// provider-neutral types the rule catalog governs.
var typeAliases = map[string]string{
	"aws_eks_node_group":  TypeComputeNodeGroup,
	"aws_eks_cluster":     TypeManagedCluster,
	"aws_launch_template": TypeLaunchProfile,
	"aws_ebs_volume":      TypeStorageVolume,
}

// Load decodes a change document from YAML or JSON bytes.
func Load(data []byte) (*Document, error) {
	var env loadEnvelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode change document: %w", err)
	}

	doc := &Document{Variables: normalizeVariables(env.Variables)}
	seen := make(map[string]struct{})

	add := func(rc ResourceChange, idx int, field string) error {
		if rc.Address == "" {
			return fmt.Errorf("%s[%d]: missing address", field, idx)
		}
		if _, dup := seen[rc.Address]; dup {
			return fmt.Errorf("%s[%d]: duplicate address %q", field, idx, rc.Address)
		}
		seen[rc.Address] = struct{}{}
		if alias, ok := typeAliases[rc.Type]; ok {
			rc.Type = alias
		}
		doc.ResourceChanges = append(doc.ResourceChanges, rc)
		return nil
	}

	for i, rc := range env.ResourceChanges {
		// A nil after block means the resource is being destroyed; there is
		// nothing to govern about a resource that will not exist.
		if rc.Change.After == nil {
			continue
		}
		err := add(ResourceChange{
			Address:    rc.Address,
			Type:       rc.Type,
			Name:       rc.Name,
			Attributes: rc.Change.After,
		}, i, "resource_changes")
		if err != nil {
			return nil, err
		}
	}

	for i, r := range env.Resources {
		attrs := r.Attributes
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		err := add(ResourceChange{
			Address:    r.Address,
			Type:       r.Type,
			Name:       r.Name,
			Attributes: attrs,
		}, i, "resources")
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// LoadFile reads and decodes a change document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read change document: %w", err)
	}
	doc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// normalizeVariables unwraps the {"value": ...} envelope plan exports put
// around each variable, so rules see plain scalars either way.
func normalizeVariables(vars map[string]interface{}) map[string]interface{} {
	if vars == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(vars))
	for name, v := range vars {
		if m, ok := v.(map[string]interface{}); ok {
			if inner, ok := m["value"]; ok && len(m) == 1 {
				out[name] = inner
				continue
			}
		}
		out[name] = v
	}
	return out
}
