package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// gpuCeilingRule caps the accelerator count per worker instance.
// Missing acceleratorCount: skipped — a group that declares none is governed
// by the toleration rule only if it declares some.
type gpuCeilingRule struct {
	maxPerInstance float64
}

// NewGPUCeilingRule returns the per-instance accelerator ceiling rule.
func NewGPUCeilingRule(maxPerInstance float64) types.Rule {
	return &gpuCeilingRule{maxPerInstance: maxPerInstance}
}

func (r *gpuCeilingRule) ID() string { return "gpu-per-group-ceiling" }

func (r *gpuCeilingRule) Description() string {
	return "Accelerator count per worker instance must not exceed the ceiling"
}

func (r *gpuCeilingRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		count, found, err := rc.FloatAttr("acceleratorCount")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "acceleratorCount", err))
			continue
		}
		if !found {
			continue
		}
		if count > r.maxPerInstance {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests %s accelerators per instance, above the %s ceiling",
				rc.Name, formatNum(count), formatNum(r.maxPerInstance)))
		}
	}
	return out
}

// gpuTolerationRule requires an explicit accelerator taint toleration on any
// group that requests accelerators. Missing tolerations list IS the
// violation here: an accelerator group without the toleration schedules
// nothing onto its expensive nodes.
type gpuTolerationRule struct {
	tolerationKey string
}

// NewGPUTolerationRule returns the accelerator-toleration requirement rule.
func NewGPUTolerationRule(tolerationKey string) types.Rule {
	return &gpuTolerationRule{tolerationKey: tolerationKey}
}

func (r *gpuTolerationRule) ID() string { return "gpu-toleration-required" }

func (r *gpuTolerationRule) Description() string {
	return "Groups requesting accelerators must tolerate the accelerator taint"
}

func (r *gpuTolerationRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		count, found, err := rc.FloatAttr("acceleratorCount")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "acceleratorCount", err))
			continue
		}
		if !found || count <= 0 {
			continue
		}

		tolerations, found, err := rc.SliceAttr("tolerations")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "tolerations", err))
			continue
		}
		if !found || !toleratesKey(tolerations, r.tolerationKey) {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests %s accelerators but declares no toleration for taint %q",
				rc.Name, formatNum(count), r.tolerationKey))
		}
	}
	return out
}

func toleratesKey(tolerations []interface{}, key string) bool {
	for _, t := range tolerations {
		m, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		if k, _ := m["key"].(string); k == key {
			return true
		}
		// An empty-key toleration with operator Exists tolerates everything.
		if op, _ := m["operator"].(string); op == "Exists" {
			if _, hasKey := m["key"]; !hasKey {
				return true
			}
		}
	}
	return false
}

// gpuIdleMinimumRule flags accelerator groups that keep warm replicas.
// Advisory only: idle accelerators are a cost signal, not a violation.
type gpuIdleMinimumRule struct{}

// NewGPUIdleMinimumRule returns the idle-accelerator advisory rule.
func NewGPUIdleMinimumRule() types.Rule {
	return &gpuIdleMinimumRule{}
}

func (r *gpuIdleMinimumRule) ID() string { return "gpu-idle-minimum" }

func (r *gpuIdleMinimumRule) Description() string {
	return "Accelerator groups with a non-zero minimum replica count accrue idle cost"
}

func (r *gpuIdleMinimumRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		if !rc.GPURole() {
			continue
		}
		minReplicas, found, err := rc.FloatAttr("minReplicas")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "minReplicas", err))
			continue
		}
		if found && minReplicas > 0 {
			out = append(out, advisory(r.ID(), rc.Address,
				"accelerator group %q keeps a minimum of %s replicas; idle accelerators accrue cost while no workload runs",
				rc.Name, formatNum(minReplicas)))
		}
	}
	return out
}

// spotCapacityRule recommends spot capacity for accelerator groups.
// Missing capacityType: skipped (provider default applies).
type spotCapacityRule struct{}

// NewSpotCapacityRule returns the spot-capacity advisory rule.
func NewSpotCapacityRule() types.Rule {
	return &spotCapacityRule{}
}

func (r *spotCapacityRule) ID() string { return "spot-capacity-advisory" }

func (r *spotCapacityRule) Description() string {
	return "Accelerator groups on on-demand capacity should consider spot"
}

func (r *spotCapacityRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		if !rc.GPURole() {
			continue
		}
		mode, found, err := rc.StringAttr("capacityType")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "capacityType", err))
			continue
		}
		if found && capacityMode(mode) == "on-demand" {
			out = append(out, advisory(r.ID(), rc.Address,
				"accelerator group %q uses on-demand capacity; spot instances cut training cost for interruptible workloads",
				rc.Name))
		}
	}
	return out
}
