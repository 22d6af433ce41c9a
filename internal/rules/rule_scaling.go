package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// scalingHeadroomRule forbids pinning a group's size. minReplicas equal to
// maxReplicas disables autoscaling entirely and blocks; desiredSize equal to
// maxReplicas can still scale nothing up and is advisory. Groups missing
// either bound are skipped (the autoscaler supplies defaults).
type scalingHeadroomRule struct{}

// NewScalingHeadroomRule returns the autoscaling-headroom rule.
func NewScalingHeadroomRule() types.Rule {
	return &scalingHeadroomRule{}
}

func (r *scalingHeadroomRule) ID() string { return "scaling-headroom" }

func (r *scalingHeadroomRule) Description() string {
	return "Worker groups must leave autoscaling headroom between min and max"
}

func (r *scalingHeadroomRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		minReplicas, minFound, err := rc.FloatAttr("minReplicas")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "minReplicas", err))
			continue
		}
		maxReplicas, maxFound, err := rc.FloatAttr("maxReplicas")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "maxReplicas", err))
			continue
		}

		if minFound && maxFound && minReplicas == maxReplicas {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q is fixed at %s replicas (min == max); autoscaling is disabled",
				rc.Name, formatNum(maxReplicas)))
			continue
		}

		desired, desiredFound, err := rc.FloatAttr("desiredSize")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "desiredSize", err))
			continue
		}
		if desiredFound && maxFound && desired == maxReplicas {
			out = append(out, advisory(r.ID(), rc.Address,
				"worker group %q is currently pinned at its maximum of %s replicas; it can scale down but not up",
				rc.Name, formatNum(maxReplicas)))
		}
	}
	return out
}
