// Package rules holds the guardrail catalog and the evaluator that applies
// it to a change document.
//
// # Contract
//
// Every rule is pure: it reads the document, never mutates it, performs no
// I/O, and its result set is independent of evaluation order. Failures
// inside a rule (an unparseable quantity, a wrong-typed attribute) become
// Blocking findings, so a malformed document denies admission instead of
// slipping past the checks that would have caught it.
//
// # Built-in catalog
//
// Cluster subsystem:
//
//   - region-allowlist: deployment region must be approved.
//   - instance-family-allowlist: instance types must come from the
//     role-specific allow-list (gpu- vs cpu-named groups).
//   - metadata-service-hardening: httpTokens must be "required"; hop limit
//     capped. Also covers launch profiles.
//   - volume-encryption: storage volumes (and declared node block devices)
//     must be encrypted.
//   - volume-size-ceiling: storage volumes capped in GiB.
//   - required-tags: governance tags must be present on governed types.
//   - cluster-worker-ceiling: Σ maxReplicas over all groups.
//   - cluster-gpu-ceiling: Σ maxReplicas × acceleratorCount over gpu groups.
//
// Workload subsystem:
//
//   - cpu-request-ceiling / memory-request-ceiling: per-group request caps.
//   - resource-request-floor: declared requests must be above starvation
//     levels.
//   - gpu-per-group-ceiling: accelerators per instance capped.
//   - gpu-toleration-required: accelerator groups must tolerate the
//     accelerator taint.
//   - scaling-headroom: min == max blocks, desired == max advises.
//
// Budget subsystem:
//
//   - cpu-capacity-budget: Σ desiredSize over cpu groups capped.
//   - gpu-idle-minimum: warm accelerator replicas advised against.
//   - spot-capacity-advisory: on-demand accelerator capacity advised
//     against.
//
// Each rule documents its missing-attribute policy at its definition:
// required-field rules treat absence as the violation, threshold rules skip
// the resource.
package rules
