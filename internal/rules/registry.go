package rules

import (
	"fmt"
	"sync"

	"github.com/ambicuity/Terraform-Driven-Ray-on-Kubernetes-Platform/internal/types"
)

// Subsystem partitions the catalog by what a rule governs.
type Subsystem string

const (
	SubsystemCluster  Subsystem = "cluster"  // infrastructure limits and hardening
	SubsystemWorkload Subsystem = "workload" // per-group resource governance
	SubsystemBudget   Subsystem = "budget"   // spend guardrails
)

type registryEntry struct {
	subsystem Subsystem
	rule      types.Rule
}

// Registry holds the rule catalog. Registration order is preserved so that
// evaluation output is stable run-to-run. Safe for concurrent reads once
// registration is done.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]types.Rule
	ordered []registryEntry
}

// NewRegistry creates an empty registry. Call Register to add rules, or use
// Default for the built-in catalog.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]types.Rule)}
}

// Register adds a rule under a subsystem. Returns an error if the rule ID is
// already taken.
func (r *Registry) Register(subsystem Subsystem, rule types.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("rule %q already registered", id)
	}
	r.byID[id] = rule
	r.ordered = append(r.ordered, registryEntry{subsystem: subsystem, rule: rule})
	return nil
}

// MustRegister is Register for static catalog construction, where a
// duplicate ID is a programming error.
func (r *Registry) MustRegister(subsystem Subsystem, rule types.Rule) {
	if err := r.Register(subsystem, rule); err != nil {
		panic(err)
	}
}

// ForID returns the rule with the given ID, or nil if none.
func (r *Registry) ForID(id string) types.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// All returns every registered rule in registration order.
func (r *Registry) All() []types.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Rule, 0, len(r.ordered))
	for _, e := range r.ordered {
		out = append(out, e.rule)
	}
	return out
}

// BySubsystem returns the rules registered under the given subsystem, in
// registration order.
func (r *Registry) BySubsystem(subsystem Subsystem) []types.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.Rule
	for _, e := range r.ordered {
		if e.subsystem == subsystem {
			out = append(out, e.rule)
		}
	}
	return out
}

// SubsystemOf returns the subsystem a rule ID was registered under.
func (r *Registry) SubsystemOf(id string) (Subsystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.ordered {
		if e.rule.ID() == id {
			return e.subsystem, true
		}
	}
	return "", false
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}
