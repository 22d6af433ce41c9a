package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/quantity"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// cpuCeilingRule caps the CPU request of a single worker group.
// Missing request: skipped — groups without explicit requests inherit
// platform defaults this ceiling does not govern.
type cpuCeilingRule struct {
	maxCores float64
}

// NewCPUCeilingRule returns the per-group CPU request ceiling rule.
func NewCPUCeilingRule(maxCores float64) types.Rule {
	return &cpuCeilingRule{maxCores: maxCores}
}

func (r *cpuCeilingRule) ID() string { return "cpu-request-ceiling" }

func (r *cpuCeilingRule) Description() string {
	return "Worker group CPU requests must not exceed the per-group ceiling"
}

func (r *cpuCeilingRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		cores, found, err := cpuRequest(rc)
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "resources.requests.cpu", err))
			continue
		}
		if !found {
			continue
		}
		if cores > r.maxCores {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests %s CPU per worker, above the %s ceiling",
				rc.Name, quantity.FormatCPU(cores), quantity.FormatCPU(r.maxCores)))
		}
	}
	return out
}

// memoryCeilingRule caps the memory request of a single worker group.
// Missing request: skipped, same as the CPU ceiling.
type memoryCeilingRule struct {
	maxGiB float64
}

// NewMemoryCeilingRule returns the per-group memory request ceiling rule.
func NewMemoryCeilingRule(maxGiB float64) types.Rule {
	return &memoryCeilingRule{maxGiB: maxGiB}
}

func (r *memoryCeilingRule) ID() string { return "memory-request-ceiling" }

func (r *memoryCeilingRule) Description() string {
	return "Worker group memory requests must not exceed the per-group ceiling"
}

func (r *memoryCeilingRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		gib, found, err := memoryRequest(rc)
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "resources.requests.memory", err))
			continue
		}
		if !found {
			continue
		}
		if gib > r.maxGiB {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests %s memory per worker, above the %s ceiling",
				rc.Name, quantity.FormatGiB(gib), quantity.FormatGiB(r.maxGiB)))
		}
	}
	return out
}

// requestFloorRule rejects starvation-level resource requests. A group that
// declares a request at all must declare a usable one; groups with no
// explicit requests are skipped (platform defaults apply to those).
type requestFloorRule struct {
	minCores float64
	minGiB   float64
}

// NewRequestFloorRule returns the minimum CPU/memory request rule.
func NewRequestFloorRule(minCores, minGiB float64) types.Rule {
	return &requestFloorRule{minCores: minCores, minGiB: minGiB}
}

func (r *requestFloorRule) ID() string { return "resource-request-floor" }

func (r *requestFloorRule) Description() string {
	return "Declared worker resource requests must meet the starvation floor"
}

func (r *requestFloorRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		cores, found, err := cpuRequest(rc)
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "resources.requests.cpu", err))
		} else if found && cores < r.minCores {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests only %s CPU per worker, below the %s floor",
				rc.Name, quantity.FormatCPU(cores), quantity.FormatCPU(r.minCores)))
		}

		gib, found, err := memoryRequest(rc)
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "resources.requests.memory", err))
		} else if found && gib < r.minGiB {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q requests only %s memory per worker, below the %s floor",
				rc.Name, quantity.FormatGiB(gib), quantity.FormatGiB(r.minGiB)))
		}
	}
	return out
}
