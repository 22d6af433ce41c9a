package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// requiredTagsRule enforces the governance tag set on every governed
// resource type. Absence of the tags map, or of any required key, is the
// violation; one finding per missing key per resource, never deduplicated
// across resources.
type requiredTagsRule struct {
	required []string
}

// NewRequiredTagsRule returns the mandatory-tags rule.
func NewRequiredTagsRule(required []string) types.Rule {
	return &requiredTagsRule{required: required}
}

func (r *requiredTagsRule) ID() string { return "required-tags" }

func (r *requiredTagsRule) Description() string {
	return "Governed resources must carry the mandatory governance tags"
}

func (r *requiredTagsRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	governed := doc.OfType(plan.TypeComputeNodeGroup, plan.TypeManagedCluster, plan.TypeStorageVolume)
	for _, rc := range governed {
		tags, found, err := rc.MapAttr("tags")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "tags", err))
			continue
		}
		if !found {
			tags = map[string]interface{}{}
		}
		for _, key := range r.required {
			if _, ok := tags[key]; !ok {
				out = append(out, blocking(r.ID(), rc.Address,
					"%s is missing required tag %q", rc.Address, key))
			}
		}
	}
	return out
}
