// Defines SchedulerConfig, the YAML-loadable configuration bundle for
// Scheduler.Configure, grounded on the teacher's bundle.go: a plain
// struct with yaml tags, a Validate method, and a loader wrapping
// gopkg.in/yaml.v3 with %w-wrapped errors.

package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchedulerConfig bundles every parameter accepted by Configure and by the
// `init`/`config` session commands (spec.md §6).
type SchedulerConfig struct {
	Policy             PolicyName        `yaml:"policy"`
	TickMS             int64             `yaml:"tick_ms"`
	Quantum            int64             `yaml:"quantum"`
	MemoryMode         MemoryMode        `yaml:"memory_mode"`
	PageSize           int64             `yaml:"page_size"`
	FrameCount         int               `yaml:"frames"`
	ReplacementPolicy  ReplacementPolicy `yaml:"mem_algo"`
	GlobalFaultPenalty int               `yaml:"fault_penalty"`

	// AllowOfflineOPT bypasses the OPT-in-live-mode rejection below. It is
	// never loaded from YAML or exposed as a CLI flag; only sim/compare's
	// offline comparator runs, which precompute a full reference string
	// before simulating, set it programmatically.
	AllowOfflineOPT bool `yaml:"-"`
}

// DefaultSchedulerConfig returns a minimal valid CPU-only FCFS config,
// used when no config file or flags are supplied.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Policy:     FCFS,
		TickMS:     100,
		Quantum:    2,
		MemoryMode: MemoryOff,
	}
}

// Validate rejects invalid parameter combinations, mirroring §4.1's
// Configure rejection rules.
func (c SchedulerConfig) Validate() error {
	if !IsValidPolicy(c.Policy) {
		return &ConfigError{Reason: fmt.Sprintf("unknown policy %q", c.Policy)}
	}
	if (c.Policy == RR || c.Policy == MLQ) && c.Quantum < 1 {
		return &ConfigError{Reason: fmt.Sprintf("%s requires quantum >= 1", c.Policy)}
	}
	switch c.MemoryMode {
	case "", MemoryOff:
		// no further validation needed
	case MemoryFull:
		if c.PageSize <= 0 || c.PageSize&(c.PageSize-1) != 0 {
			return &ConfigError{Reason: "page_size must be a positive power of two"}
		}
		if c.FrameCount < 1 {
			return &ConfigError{Reason: "frames must be >= 1"}
		}
		if !IsValidReplacementPolicy(c.ReplacementPolicy) {
			return &ConfigError{Reason: fmt.Sprintf("unknown replacement policy %q", c.ReplacementPolicy)}
		}
		if c.ReplacementPolicy == ReplOPT && !c.AllowOfflineOPT {
			return &ConfigError{Reason: "OPT requires a precomputed reference string; unsupported in live sessions"}
		}
		if c.GlobalFaultPenalty < 1 {
			return &ConfigError{Reason: "fault_penalty must be >= 1 in FULL memory mode"}
		}
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown memory mode %q", c.MemoryMode)}
	}
	return nil
}

// LoadSchedulerConfig reads and unmarshals a YAML config file.
func LoadSchedulerConfig(path string) (*SchedulerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheduler config: %w", err)
	}
	cfg := DefaultSchedulerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scheduler config: %w", err)
	}
	return &cfg, nil
}
