package rules

// Limits carries every threshold and allow-list the built-in catalog uses.
// The defaults encode the platform's governance posture; CI deployments can
// construct a catalog from adjusted limits without touching rule code.
type Limits struct {
	MaxCPUCoresPerGroup  float64
	MinCPUCoresPerGroup  float64
	MaxMemoryGiBPerGroup float64
	MinMemoryGiBPerGroup float64

	MaxAcceleratorsPerInstance float64
	AcceleratorTolerationKey   string

	AllowedRegions          []string
	AllowedGPUInstanceTypes []string
	AllowedCPUInstanceTypes []string

	RequiredTags []string

	MaxVolumeGiB        float64
	MaxMetadataHopLimit float64

	ClusterAcceleratorCeiling float64
	ClusterWorkerCeiling      float64
	CPUCapacityBudget         float64
}

// DefaultLimits returns the platform's standing guardrail values.
func DefaultLimits() Limits {
	return Limits{
		MaxCPUCoresPerGroup:  64,
		MinCPUCoresPerGroup:  0.25,
		MaxMemoryGiBPerGroup: 512,
		MinMemoryGiBPerGroup: 0.5,

		MaxAcceleratorsPerInstance: 8,
		AcceleratorTolerationKey:   "nvidia.com/gpu",

		AllowedRegions: []string{"us-west-2", "us-east-1", "eu-west-1"},
		AllowedGPUInstanceTypes: []string{
			"g4dn.xlarge", "g4dn.2xlarge", "g4dn.12xlarge",
			"g5.xlarge", "g5.2xlarge",
			"p4d.24xlarge",
		},
		AllowedCPUInstanceTypes: []string{
			"m5.large", "m5.xlarge", "m5.2xlarge",
			"m6i.large", "m6i.xlarge",
			"c5.xlarge", "c6i.xlarge",
			"t3.medium",
		},

		RequiredTags: []string{"team", "cost-center", "environment"},

		MaxVolumeGiB:        1024,
		MaxMetadataHopLimit: 2,

		ClusterAcceleratorCeiling: 32,
		ClusterWorkerCeiling:      100,
		CPUCapacityBudget:         20,
	}
}

// Catalog builds the full rule registry from the given limits.
func Catalog(limits Limits) *Registry {
	r := NewRegistry()

	// Cluster-level infrastructure limits and hardening.
	r.MustRegister(SubsystemCluster, NewRegionRule(limits.AllowedRegions))
	r.MustRegister(SubsystemCluster, NewInstanceFamilyRule(limits.AllowedGPUInstanceTypes, limits.AllowedCPUInstanceTypes))
	r.MustRegister(SubsystemCluster, NewMetadataHardeningRule(limits.MaxMetadataHopLimit))
	r.MustRegister(SubsystemCluster, NewEncryptionRule())
	r.MustRegister(SubsystemCluster, NewVolumeSizeRule(limits.MaxVolumeGiB))
	r.MustRegister(SubsystemCluster, NewRequiredTagsRule(limits.RequiredTags))
	r.MustRegister(SubsystemCluster, NewClusterWorkerRule(limits.ClusterWorkerCeiling))
	r.MustRegister(SubsystemCluster, NewClusterAcceleratorRule(limits.ClusterAcceleratorCeiling))

	// Per-group workload resource governance.
	r.MustRegister(SubsystemWorkload, NewCPUCeilingRule(limits.MaxCPUCoresPerGroup))
	r.MustRegister(SubsystemWorkload, NewMemoryCeilingRule(limits.MaxMemoryGiBPerGroup))
	r.MustRegister(SubsystemWorkload, NewRequestFloorRule(limits.MinCPUCoresPerGroup, limits.MinMemoryGiBPerGroup))
	r.MustRegister(SubsystemWorkload, NewGPUCeilingRule(limits.MaxAcceleratorsPerInstance))
	r.MustRegister(SubsystemWorkload, NewGPUTolerationRule(limits.AcceleratorTolerationKey))
	r.MustRegister(SubsystemWorkload, NewScalingHeadroomRule())

	// Cost guardrails.
	r.MustRegister(SubsystemBudget, NewCPUCapacityBudgetRule(limits.CPUCapacityBudget))
	r.MustRegister(SubsystemBudget, NewGPUIdleMinimumRule())
	r.MustRegister(SubsystemBudget, NewSpotCapacityRule())

	return r
}

// Default returns the built-in catalog with DefaultLimits.
func Default() *Registry {
	return Catalog(DefaultLimits())
}
