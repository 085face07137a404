// Implements EventLog, the ordered, bounded transition log spec.md §3/§6
// designates the single authority for replay classification.

package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultEventLogLimit bounds the log's memory footprint for long-running
// sessions. See SPEC_FULL.md "SUPPLEMENTED FEATURES" — the Python original
// caps its own event log at 120 entries for the same reason.
const defaultEventLogLimit = 500

// TransitionRecord is one parsed entry of the event log grammar:
// "t=<n>: <pid> <FROM> -> <TO> [(<reason>)]".
type TransitionRecord struct {
	Time   int64
	PID    string
	From   State
	To     State
	Reason string // empty if no reason was logged
}

// String renders the record in the grammar spec.md §6 specifies.
func (r TransitionRecord) String() string {
	if r.Reason == "" {
		return fmt.Sprintf("t=%d: %s %s -> %s", r.Time, r.PID, r.From, r.To)
	}
	return fmt.Sprintf("t=%d: %s %s -> %s (%s)", r.Time, r.PID, r.From, r.To, r.Reason)
}

// EventLog is an ordered, capacity-bounded ring of TransitionRecords.
type EventLog struct {
	limit   int
	records []TransitionRecord
}

// NewEventLog creates an EventLog bounded at limit entries. A non-positive
// limit falls back to defaultEventLogLimit.
func NewEventLog(limit int) *EventLog {
	if limit <= 0 {
		limit = defaultEventLogLimit
	}
	return &EventLog{limit: limit}
}

// Record appends a transition, trimming the oldest entry if over capacity.
func (l *EventLog) Record(t int64, pid string, from, to State, reason string) {
	l.records = append(l.records, TransitionRecord{Time: t, PID: pid, From: from, To: to, Reason: reason})
	if len(l.records) > l.limit {
		l.records = l.records[len(l.records)-l.limit:]
	}
}

// Records returns the log's contents, oldest first. Callers must not
// mutate the returned slice.
func (l *EventLog) Records() []TransitionRecord {
	return l.records
}

// Strings renders every record via TransitionRecord.String, in order.
func (l *EventLog) Strings() []string {
	out := make([]string, len(l.records))
	for i, r := range l.records {
		out[i] = r.String()
	}
	return out
}

// Reset clears the log.
func (l *EventLog) Reset() {
	l.records = nil
}

// ParseTransitionLine parses one "t=<n>: <pid> <FROM> -> <TO> [(<reason>)]"
// line back into a TransitionRecord. Used by sim/replay to filter a
// serialized event log by tick without re-deriving it from live state.
func ParseTransitionLine(line string) (TransitionRecord, error) {
	var rec TransitionRecord
	rest, ok := strings.CutPrefix(line, "t=")
	if !ok {
		return rec, fmt.Errorf("malformed transition line: %q", line)
	}
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return rec, fmt.Errorf("malformed transition line: %q", line)
	}
	t, err := strconv.ParseInt(rest[:colon], 10, 64)
	if err != nil {
		return rec, fmt.Errorf("malformed tick in transition line: %q", line)
	}
	rec.Time = t

	body := strings.TrimSpace(rest[colon+1:])
	var reason string
	if open := strings.Index(body, " ("); open >= 0 && strings.HasSuffix(body, ")") {
		reason = body[open+2 : len(body)-1]
		body = body[:open]
	}
	rec.Reason = reason

	fields := strings.Fields(body)
	// fields: [pid, FROM, "->", TO]
	if len(fields) != 4 || fields[2] != "->" {
		return rec, fmt.Errorf("malformed transition body: %q", body)
	}
	rec.PID = fields[0]
	rec.From = State(fields[1])
	rec.To = State(fields[3])
	return rec, nil
}
