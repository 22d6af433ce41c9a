package rules

import (
	"go.uber.org/zap"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// Evaluator applies every rule in a registry to a change document.
//
// Evaluation is pure: the document is only read, rules run independently,
// and the result set does not depend on rule order (the emitted order does,
// so CI output stays stable).
type Evaluator struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEvaluator creates an Evaluator over the given registry. Pass
// zap.NewNop() when evaluation logs are unwanted.
func NewEvaluator(registry *Registry, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{registry: registry, logger: logger}
}

// Evaluate runs the full catalog against the document and returns every
// finding, ordered by rule registration order and document order within a
// rule. Findings are never deduplicated here.
func (e *Evaluator) Evaluate(doc *plan.Document) []types.Finding {
	if doc == nil {
		return nil
	}

	var result []types.Finding
	for _, rule := range e.registry.All() {
		findings := rule.Evaluate(doc)
		if len(findings) > 0 {
			e.logger.Debug("Rule triggered",
				zap.String("rule", rule.ID()),
				zap.Int("findings", len(findings)),
			)
		}
		result = append(result, findings...)
	}
	return result
}
