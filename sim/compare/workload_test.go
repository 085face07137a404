package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ticksim/ticksim/sim"
)

const testWorkloadYAML = `
quantum: 3
processes:
  - pid: P1
    arrival: 0
    priority: 1
    queue: USER
    bursts: [4, 2, 4]
  - pid: S1
    arrival: 0
    priority: 1
    queue: SYS
    bursts: [2]
memory:
  page_size: 64
  frames: 4
  mem_algo: LRU
  fault_penalty: 2
`

func writeWorkload(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "workload.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}

func TestLoadWorkload_ParsesProcessesAndMemory(t *testing.T) {
	path := writeWorkload(t, testWorkloadYAML)
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("LoadWorkload: %v", err)
	}
	if w.Quantum != 3 {
		t.Errorf("Quantum = %d, want 3", w.Quantum)
	}
	if len(w.Processes) != 2 {
		t.Fatalf("len(Processes) = %d, want 2", len(w.Processes))
	}
	if w.Memory == nil || w.Memory.ReplacementPolicy != "LRU" {
		t.Errorf("Memory = %+v", w.Memory)
	}
}

func TestLoadWorkload_DefaultsQuantumWhenUnset(t *testing.T) {
	path := writeWorkload(t, "processes:\n  - pid: P1\n    bursts: [1]\n")
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("LoadWorkload: %v", err)
	}
	if w.Quantum != 2 {
		t.Errorf("Quantum = %d, want default 2", w.Quantum)
	}
}

func TestLoadWorkload_MissingFile(t *testing.T) {
	if _, err := LoadWorkload("/nonexistent/workload.yaml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestWorkload_Specs_MapsQueueClass(t *testing.T) {
	path := writeWorkload(t, testWorkloadYAML)
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("LoadWorkload: %v", err)
	}
	specs := w.Specs()
	if specs[0].Queue != sim.QueueUser {
		t.Errorf("specs[0].Queue = %v, want USER", specs[0].Queue)
	}
	if specs[1].Queue != sim.QueueSys {
		t.Errorf("specs[1].Queue = %v, want SYS", specs[1].Queue)
	}
}

func TestWorkload_MemoryConfigOrNil_ReturnsNilWithoutMemorySection(t *testing.T) {
	path := writeWorkload(t, "processes:\n  - pid: P1\n    bursts: [1]\n")
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("LoadWorkload: %v", err)
	}
	if w.MemoryConfigOrNil() != nil {
		t.Errorf("expected nil MemoryConfig without a memory section")
	}
}

func TestWorkload_MemoryConfigOrNil_ConvertsFields(t *testing.T) {
	path := writeWorkload(t, testWorkloadYAML)
	w, err := LoadWorkload(path)
	if err != nil {
		t.Fatalf("LoadWorkload: %v", err)
	}
	mc := w.MemoryConfigOrNil()
	if mc == nil {
		t.Fatalf("expected a non-nil MemoryConfig")
	}
	if mc.PageSize != 64 || mc.FrameCount != 4 || mc.ReplacementPolicy != sim.ReplLRU || mc.FaultPenalty != 2 {
		t.Errorf("MemoryConfig = %+v", mc)
	}
}
