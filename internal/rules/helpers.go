package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/aggregate"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/quantity"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

func blocking(ruleID, address, format string, args ...interface{}) types.Finding {
	return types.Finding{
		RuleID:   ruleID,
		Severity: types.SeverityBlocking,
		Message:  fmt.Sprintf(format, args...),
		Address:  address,
	}
}

func advisory(ruleID, address, format string, args ...interface{}) types.Finding {
	return types.Finding{
		RuleID:   ruleID,
		Severity: types.SeverityAdvisory,
		Message:  fmt.Sprintf(format, args...),
		Address:  address,
	}
}

// malformed reports an unparseable or wrong-typed attribute as a blocking
// finding. Parse failures fail closed: they deny admission instead of
// silently skipping the check that would have caught them.
func malformed(ruleID, address, attrPath string, err error) types.Finding {
	return blocking(ruleID, address, "attribute %q of %s cannot be evaluated: %v", attrPath, address, err)
}

// formatNum renders an aggregate or threshold without a trailing ".0" so
// messages read "total 25" rather than "total 25.000000".
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quoteList renders an allow-list for messages, every member named so an
// operator can fix the value without opening the catalog source.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

func inList(value string, list []string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// cpuRequest reads and normalizes a group's CPU request in cores.
func cpuRequest(rc plan.ResourceChange) (float64, bool, error) {
	raw, ok := rc.RawAttr("resources", "requests", "cpu")
	if !ok {
		return 0, false, nil
	}
	cores, err := quantity.ParseCPU(raw)
	if err != nil {
		return 0, false, err
	}
	return cores, true, nil
}

// memoryRequest reads and normalizes a group's memory request in GiB.
func memoryRequest(rc plan.ResourceChange) (float64, bool, error) {
	raw, ok := rc.RawAttr("resources", "requests", "memory")
	if !ok {
		return 0, false, nil
	}
	gib, err := quantity.ParseMemory(raw)
	if err != nil {
		return 0, false, err
	}
	return gib, true, nil
}

// floatExtractor adapts a numeric attribute path to an aggregate.Extractor.
func floatExtractor(fields ...string) aggregate.Extractor {
	return func(rc plan.ResourceChange) (float64, bool, error) {
		return rc.FloatAttr(fields...)
	}
}

// capacityMode normalizes a capacityType attribute for comparison; plan
// exports spell it ON_DEMAND, workload manifests on-demand.
func capacityMode(raw string) string {
	return strings.ReplaceAll(strings.ToLower(raw), "_", "-")
}
