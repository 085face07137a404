package sim

import "fmt"

// ConfigError signals an invalid Configure/config request: an unsupported
// policy, a missing quantum for a quantum-driven policy, an invalid frame
// count or page size, or a replacement policy unsupported in live mode.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Reason)
}

// DuplicatePidError signals AddProcess was called with a pid already known
// to the scheduler (pending, ready, or already terminal).
type DuplicatePidError struct {
	PID string
}

func (e *DuplicatePidError) Error() string {
	return fmt.Sprintf("duplicate pid %q", e.PID)
}

// UnknownPidError signals RemoveProcess was called with a pid the scheduler
// has never seen.
type UnknownPidError struct {
	PID string
}

func (e *UnknownPidError) Error() string {
	return fmt.Sprintf("unknown pid %q", e.PID)
}

// InvalidPidError signals NewProcess was called with an empty pid.
type InvalidPidError struct{}

func (e *InvalidPidError) Error() string {
	return "pid must not be empty"
}

// InvalidBurstsError signals a burst sequence that is empty, even-length,
// or contains a non-positive burst.
type InvalidBurstsError struct {
	PID    string
	Reason string
}

func (e *InvalidBurstsError) Error() string {
	if e.PID == "" {
		return fmt.Sprintf("invalid bursts: %s", e.Reason)
	}
	return fmt.Sprintf("invalid bursts for pid %q: %s", e.PID, e.Reason)
}

// NotInitializedError signals Tick/Run was called before a successful
// Configure.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "scheduler not initialized: call Configure before Tick"
}
