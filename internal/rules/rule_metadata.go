package rules

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// metadataHardeningRule requires instance metadata-service access to use the
// hardened session-token mode, on node groups and the launch profiles they
// reference. httpTokens is a required field: absence violates. The hop
// limit, when declared, must not let pods reach the metadata endpoint from
// more than one network hop past the node.
type metadataHardeningRule struct {
	maxHopLimit float64
}

// NewMetadataHardeningRule returns the metadata-service hardening rule.
func NewMetadataHardeningRule(maxHopLimit float64) types.Rule {
	return &metadataHardeningRule{maxHopLimit: maxHopLimit}
}

func (r *metadataHardeningRule) ID() string { return "metadata-service-hardening" }

func (r *metadataHardeningRule) Description() string {
	return "Instance metadata access must require session tokens"
}

func (r *metadataHardeningRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup, plan.TypeLaunchProfile) {
		tokens, found, err := rc.StringAttr("metadataOptions", "httpTokens")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "metadataOptions.httpTokens", err))
		} else if !found {
			out = append(out, blocking(r.ID(), rc.Address,
				"%s does not declare metadataOptions.httpTokens; session tokens must be required", rc.Address))
		} else if tokens != "required" {
			out = append(out, blocking(r.ID(), rc.Address,
				"%s sets metadataOptions.httpTokens to %q; only \"required\" is permitted", rc.Address, tokens))
		}

		hopLimit, found, err := rc.FloatAttr("metadataOptions", "httpPutResponseHopLimit")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "metadataOptions.httpPutResponseHopLimit", err))
		} else if found && hopLimit > r.maxHopLimit {
			out = append(out, blocking(r.ID(), rc.Address,
				"%s sets a metadata hop limit of %s, above the %s maximum",
				rc.Address, formatNum(hopLimit), formatNum(r.maxHopLimit)))
		}
	}
	return out
}
