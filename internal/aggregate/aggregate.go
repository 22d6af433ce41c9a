// Package aggregate computes cross-resource reductions for cluster-wide
// rules: counts, sums, and sums of per-resource products.
package aggregate

import (
	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/plan"
)

// Extractor pulls one numeric value out of a resource change. found=false
// means the resource has nothing to contribute (optional attribute absent)
// and is skipped without error.
type Extractor func(rc plan.ResourceChange) (value float64, found bool, err error)

// ExtractionError records a resource whose value could not be extracted.
// Callers surface these as blocking findings so a malformed document can
// never slip under an aggregate ceiling.
type ExtractionError struct {
	Address string
	Err     error
}

// Sum reduces the extracted values of all resources. Resources that fail
// extraction are excluded from the total and reported separately.
func Sum(resources []plan.ResourceChange, extract Extractor) (float64, []ExtractionError) {
	var total float64
	var errs []ExtractionError
	for _, rc := range resources {
		v, found, err := extract(rc)
		if err != nil {
			errs = append(errs, ExtractionError{Address: rc.Address, Err: err})
			continue
		}
		if !found {
			continue
		}
		total += v
	}
	return total, errs
}

// Count returns the number of resources satisfying pred.
func Count(resources []plan.ResourceChange, pred func(rc plan.ResourceChange) bool) int {
	n := 0
	for _, rc := range resources {
		if pred(rc) {
			n++
		}
	}
	return n
}

// Product combines two extractors by multiplication. The product is found
// only when both factors are; an error in either factor is the product's
// error. Used for per-group capacity × replica-count reductions.
func Product(a, b Extractor) Extractor {
	return func(rc plan.ResourceChange) (float64, bool, error) {
		av, afound, err := a(rc)
		if err != nil {
			return 0, false, err
		}
		bv, bfound, err := b(rc)
		if err != nil {
			return 0, false, err
		}
		if !afound || !bfound {
			return 0, false, nil
		}
		return av * bv, true, nil
	}
}
