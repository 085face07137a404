// Defines the YAML workload fixture the compare CLI command loads,
// grounded on sim/config.go's LoadSchedulerConfig loader (read file,
// unmarshal via gopkg.in/yaml.v3, wrap errors with %w) and the teacher's
// bundle.go pattern of a plain yaml-tagged struct at the config boundary.

package compare

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ticksim/ticksim/sim"
)

// WorkloadProcess is one process descriptor as it appears in a workload
// fixture file.
type WorkloadProcess struct {
	PID      string  `yaml:"pid"`
	Arrival  int64   `yaml:"arrival"`
	Priority int64   `yaml:"priority"`
	Queue    string  `yaml:"queue"`
	Bursts   []int64 `yaml:"bursts"`
}

// WorkloadMemory is the optional paged-memory section of a workload
// fixture, applied uniformly across every policy the comparator runs.
type WorkloadMemory struct {
	PageSize          int64  `yaml:"page_size"`
	Frames            int    `yaml:"frames"`
	ReplacementPolicy string `yaml:"mem_algo"`
	FaultPenalty      int    `yaml:"fault_penalty"`
}

// Workload is the top-level shape of a comparator input file.
type Workload struct {
	Quantum   int64             `yaml:"quantum"`
	Processes []WorkloadProcess `yaml:"processes"`
	Memory    *WorkloadMemory   `yaml:"memory"`
}

// LoadWorkload reads and unmarshals a workload fixture file.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload file: %w", err)
	}
	var w Workload
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing workload file: %w", err)
	}
	if w.Quantum == 0 {
		w.Quantum = 2
	}
	return &w, nil
}

// Specs converts the fixture's process list into sim.ProcessSpecs.
func (w *Workload) Specs() []sim.ProcessSpec {
	specs := make([]sim.ProcessSpec, len(w.Processes))
	for i, p := range w.Processes {
		queue := sim.QueueUser
		if p.Queue == string(sim.QueueSys) {
			queue = sim.QueueSys
		}
		specs[i] = sim.ProcessSpec{
			PID:      p.PID,
			Arrival:  p.Arrival,
			Priority: p.Priority,
			Queue:    queue,
			Bursts:   p.Bursts,
		}
	}
	return specs
}

// MemoryConfigOrNil converts the fixture's memory section, or returns nil when
// the fixture requested CPU-only comparison.
func (w *Workload) MemoryConfigOrNil() *MemoryConfig {
	if w.Memory == nil {
		return nil
	}
	return &MemoryConfig{
		PageSize:          w.Memory.PageSize,
		FrameCount:        w.Memory.Frames,
		ReplacementPolicy: sim.ReplacementPolicy(w.Memory.ReplacementPolicy),
		FaultPenalty:      w.Memory.FaultPenalty,
	}
}
