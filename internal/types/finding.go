package types

import "github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"

// Severity partitions findings into the two tiers the admission decision
// cares about.
type Severity string

const (
	// SeverityBlocking prevents admission of the change document.
	SeverityBlocking Severity = "Blocking"
	// SeverityAdvisory is informational; it is reported but never gates.
	SeverityAdvisory Severity = "Advisory"
)

// Finding is one rule violation or advisory notice. Message is fully
// formatted; no further templating happens downstream.
type Finding struct {
	// RuleID identifies the rule that produced the finding. Silencing and
	// override lists key on it.
	RuleID string `json:"ruleId"`

	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// Address is the resource the finding is tied to. Empty for
	// cross-resource aggregate findings that have no single source.
	Address string `json:"address,omitempty"`
}

// Rule inspects a change document and reports violations.
//
// Implementations must be pure: no I/O, no mutation of the document, and a
// result set independent of the order rules run in. Internal failures
// (malformed quantities, wrong-typed attributes) are converted into Blocking
// findings rather than returned as errors, so a malformed document fails
// closed instead of slipping past the gate.
type Rule interface {
	// ID returns the stable identifier used in messages and silencing lists.
	ID() string

	// Description returns a one-line summary for catalog listings.
	Description() string

	// Evaluate returns zero or more findings for the document. Two resources
	// triggering the same logical violation each produce a distinct finding;
	// de-duplication is a presentation concern.
	Evaluate(doc *plan.Document) []Finding
}
