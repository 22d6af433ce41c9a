// Package report turns a flat finding list into the admission decision.
package report

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// Report is the final output of one evaluation. Admission is derived from
// the blocking partition, never stored, so the two can not disagree.
type Report struct {
	Blocking []types.Finding `json:"blocking"`
	Advisory []types.Finding `json:"advisory"`
}

// Admitted reports whether the change document may proceed: true iff no
// blocking finding exists. This is the single source of truth for gating.
func (r Report) Admitted() bool {
	return len(r.Blocking) == 0
}

// Decide partitions findings by severity, preserving their order within
// each partition. Pure reduction; it performs no recovery and cannot fail.
func Decide(findings []types.Finding) Report {
	var rep Report
	for _, f := range findings {
		switch f.Severity {
		case types.SeverityBlocking:
			rep.Blocking = append(rep.Blocking, f)
		default:
			rep.Advisory = append(rep.Advisory, f)
		}
	}
	return rep
}

// Silence removes findings whose rule ID is in ids. This is a presentation
// concern layered on top of Decide: the engine itself never suppresses.
func Silence(findings []types.Finding, ids []string) []types.Finding {
	if len(ids) == 0 {
		return findings
	}
	silenced := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		silenced[id] = struct{}{}
	}
	var out []types.Finding
	for _, f := range findings {
		if _, ok := silenced[f.RuleID]; !ok {
			out = append(out, f)
		}
	}
	return out
}
