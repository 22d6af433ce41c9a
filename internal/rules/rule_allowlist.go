package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// regionRule restricts deployments to approved regions. It checks the
// document-wide region variable and, when a resource carries its own region
// attribute, that attribute too. Missing region: skipped (the provisioning
// layer supplies a default this engine does not second-guess).
type regionRule struct {
	allowed []string
}

// NewRegionRule returns the region allow-list rule.
func NewRegionRule(allowed []string) types.Rule {
	return &regionRule{allowed: allowed}
}

func (r *regionRule) ID() string { return "region-allowlist" }

func (r *regionRule) Description() string {
	return "Deployments are restricted to approved regions"
}

func (r *regionRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding

	if region := doc.StringVariable("region"); region != "" && !inList(region, r.allowed) {
		out = append(out, blocking(r.ID(), "",
			"deployment targets region %q, which is not in the allow-list [%s]",
			region, quoteList(r.allowed)))
	}

	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup, plan.TypeManagedCluster) {
		region, found, err := rc.StringAttr("region")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "region", err))
			continue
		}
		if found && !inList(region, r.allowed) {
			out = append(out, blocking(r.ID(), rc.Address,
				"%s is placed in region %q, which is not in the allow-list [%s]",
				rc.Address, region, quoteList(r.allowed)))
		}
	}
	return out
}

// instanceFamilyRule restricts worker instance types, with separate
// allow-lists for accelerator-role and CPU-role groups (by the gpu/cpu
// naming convention). One finding per offending list element. Missing
// instanceTypes: skipped.
type instanceFamilyRule struct {
	gpuAllowed []string
	cpuAllowed []string
}

// NewInstanceFamilyRule returns the instance-family allow-list rule.
func NewInstanceFamilyRule(gpuAllowed, cpuAllowed []string) types.Rule {
	return &instanceFamilyRule{gpuAllowed: gpuAllowed, cpuAllowed: cpuAllowed}
}

func (r *instanceFamilyRule) ID() string { return "instance-family-allowlist" }

func (r *instanceFamilyRule) Description() string {
	return "Worker instance types must come from the role's approved families"
}

func (r *instanceFamilyRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		instanceTypes, found, err := rc.StringSliceAttr("instanceTypes")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "instanceTypes", err))
			continue
		}
		if !found {
			continue
		}

		allowed := r.cpuAllowed
		role := "CPU"
		if rc.GPURole() {
			allowed = r.gpuAllowed
			role = "accelerator"
		}

		for _, it := range instanceTypes {
			if !inList(it, allowed) {
				out = append(out, blocking(r.ID(), rc.Address,
					"%s group %q requests instance type %q, which is not in the allow-list [%s]",
					role, rc.Name, it, quoteList(allowed)))
			}
		}
	}
	return out
}
