package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/aggregate"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

func gpuGroups(doc *plan.Document) []plan.ResourceChange {
	var out []plan.ResourceChange
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		if rc.GPURole() {
			out = append(out, rc)
		}
	}
	return out
}

func cpuGroups(doc *plan.Document) []plan.ResourceChange {
	var out []plan.ResourceChange
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		if rc.CPURole() {
			out = append(out, rc)
		}
	}
	return out
}

// extractionFindings converts aggregate extraction failures into blocking
// findings, one per failing resource. A group whose contribution cannot be
// computed must not be allowed to duck the ceiling.
func extractionFindings(ruleID string, errs []aggregate.ExtractionError) []types.Finding {
	var out []types.Finding
	for _, e := range errs {
		out = append(out, blocking(ruleID, e.Address,
			"%s cannot contribute to the aggregate: %v", e.Address, e.Err))
	}
	return out
}

// clusterAcceleratorRule caps the cluster-wide accelerator capacity: the sum
// of maxReplicas × acceleratorCount over accelerator groups. At most one
// ceiling finding per document. Groups missing either attribute contribute
// nothing.
type clusterAcceleratorRule struct {
	ceiling float64
}

// NewClusterAcceleratorRule returns the cluster accelerator ceiling rule.
func NewClusterAcceleratorRule(ceiling float64) types.Rule {
	return &clusterAcceleratorRule{ceiling: ceiling}
}

func (r *clusterAcceleratorRule) ID() string { return "cluster-gpu-ceiling" }

func (r *clusterAcceleratorRule) Description() string {
	return "Total accelerator capacity across all groups must not exceed the cluster ceiling"
}

func (r *clusterAcceleratorRule) Evaluate(doc *plan.Document) []types.Finding {
	total, errs := aggregate.Sum(gpuGroups(doc), aggregate.Product(
		floatExtractor("maxReplicas"),
		floatExtractor("acceleratorCount"),
	))
	out := extractionFindings(r.ID(), errs)
	if total > r.ceiling {
		groups := aggregate.Count(doc.OfType(plan.TypeComputeNodeGroup), plan.ResourceChange.GPURole)
		out = append(out, blocking(r.ID(), "",
			"the %d accelerator groups can scale to %s accelerators in total, above the cluster ceiling of %s",
			groups, formatNum(total), formatNum(r.ceiling)))
	}
	return out
}

// clusterWorkerRule caps the total worker count the cluster can scale to:
// the sum of maxReplicas over every worker group.
type clusterWorkerRule struct {
	ceiling float64
}

// NewClusterWorkerRule returns the cluster worker ceiling rule.
func NewClusterWorkerRule(ceiling float64) types.Rule {
	return &clusterWorkerRule{ceiling: ceiling}
}

func (r *clusterWorkerRule) ID() string { return "cluster-worker-ceiling" }

func (r *clusterWorkerRule) Description() string {
	return "Total worker count across all groups must not exceed the cluster ceiling"
}

func (r *clusterWorkerRule) Evaluate(doc *plan.Document) []types.Finding {
	total, errs := aggregate.Sum(doc.OfType(plan.TypeComputeNodeGroup), floatExtractor("maxReplicas"))
	out := extractionFindings(r.ID(), errs)
	if total > r.ceiling {
		out = append(out, blocking(r.ID(), "",
			"worker groups can scale to %s workers in total, above the cluster ceiling of %s",
			formatNum(total), formatNum(r.ceiling)))
	}
	return out
}

// cpuCapacityBudgetRule caps provisioned CPU-role capacity as a spend
// guardrail: the sum of desiredSize over CPU-role groups.
type cpuCapacityBudgetRule struct {
	budget float64
}

// NewCPUCapacityBudgetRule returns the CPU capacity budget rule.
func NewCPUCapacityBudgetRule(budget float64) types.Rule {
	return &cpuCapacityBudgetRule{budget: budget}
}

func (r *cpuCapacityBudgetRule) ID() string { return "cpu-capacity-budget" }

func (r *cpuCapacityBudgetRule) Description() string {
	return "Total desired CPU-role capacity must stay within the spend budget"
}

func (r *cpuCapacityBudgetRule) Evaluate(doc *plan.Document) []types.Finding {
	total, errs := aggregate.Sum(cpuGroups(doc), floatExtractor("desiredSize"))
	out := extractionFindings(r.ID(), errs)
	if total > r.budget {
		groups := aggregate.Count(doc.OfType(plan.TypeComputeNodeGroup), plan.ResourceChange.CPURole)
		out = append(out, blocking(r.ID(), "",
			"the %d CPU worker groups provision %s desired workers in total, above the budget ceiling of %s",
			groups, formatNum(total), formatNum(r.budget)))
	}
	return out
}
