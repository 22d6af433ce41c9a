package rules

import (
	"fmt"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/quantity"
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// encryptionRule requires storage to be encrypted at rest. For volumes the
// encrypted attribute is required: absence violates, same as false. For
// node groups the check applies to the blockDevice map when one is declared;
// groups without a blockDevice use the provider image default and are
// skipped.
type encryptionRule struct{}

// NewEncryptionRule returns the volume-encryption requirement rule.
func NewEncryptionRule() types.Rule {
	return &encryptionRule{}
}

func (r *encryptionRule) ID() string { return "volume-encryption" }

func (r *encryptionRule) Description() string {
	return "Storage volumes must be encrypted at rest"
}

func (r *encryptionRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding

	for _, rc := range doc.OfType(plan.TypeStorageVolume) {
		encrypted, found, err := rc.BoolAttr("encrypted")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "encrypted", err))
			continue
		}
		if !found || !encrypted {
			out = append(out, blocking(r.ID(), rc.Address,
				"storage volume %q is not marked encrypted", rc.Name))
		}
	}

	for _, rc := range doc.OfType(plan.TypeComputeNodeGroup) {
		if _, found, _ := rc.MapAttr("blockDevice"); !found {
			continue
		}
		encrypted, found, err := rc.BoolAttr("blockDevice", "encrypted")
		if err != nil {
			out = append(out, malformed(r.ID(), rc.Address, "blockDevice.encrypted", err))
			continue
		}
		if !found || !encrypted {
			out = append(out, blocking(r.ID(), rc.Address,
				"worker group %q declares a block device that is not marked encrypted", rc.Name))
		}
	}

	return out
}

// volumeSizeRule caps storage volume size. The size attribute is either a
// plain number (GiB) or a quantity string with a binary suffix; missing size
// is skipped (provider default sizes are below any sane ceiling). A quoted
// bare number is rejected: the numeric form means GiB but ParseMemory reads
// an unsuffixed numeral as bytes, and the two must not diverge.
type volumeSizeRule struct {
	maxGiB float64
}

// NewVolumeSizeRule returns the storage volume size ceiling rule.
func NewVolumeSizeRule(maxGiB float64) types.Rule {
	return &volumeSizeRule{maxGiB: maxGiB}
}

func (r *volumeSizeRule) ID() string { return "volume-size-ceiling" }

func (r *volumeSizeRule) Description() string {
	return "Storage volumes must not exceed the size ceiling"
}

func (r *volumeSizeRule) Evaluate(doc *plan.Document) []types.Finding {
	var out []types.Finding
	for _, rc := range doc.OfType(plan.TypeStorageVolume) {
		raw, ok := rc.RawAttr("size")
		if !ok {
			continue
		}

		var gib float64
		switch v := raw.(type) {
		case string:
			if !quantity.HasBinarySuffix(v) {
				out = append(out, malformed(r.ID(), rc.Address, "size",
					fmt.Errorf("%w: string size %q needs a binary suffix", quantity.ErrMalformed, v)))
				continue
			}
			parsed, err := quantity.ParseMemory(v)
			if err != nil {
				out = append(out, malformed(r.ID(), rc.Address, "size", err))
				continue
			}
			gib = parsed
		case float64:
			gib = v
		case int64:
			gib = float64(v)
		case int:
			gib = float64(v)
		default:
			out = append(out, malformed(r.ID(), rc.Address, "size", plan.ErrWrongType))
			continue
		}

		if gib > r.maxGiB {
			out = append(out, blocking(r.ID(), rc.Address,
				"storage volume %q is %s, above the %s ceiling",
				rc.Name, quantity.FormatGiB(gib), quantity.FormatGiB(r.maxGiB)))
		}
	}
	return out
}
