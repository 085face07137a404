// Implements Session: the single-writer command loop and bounded
// latest-wins fan-out of spec.md §5–§6, grounded on the teacher's
// event.go/simulator.go channel-and-queue plumbing (Schedule enqueues,
// Run drains) generalized from a heap-ordered future-event queue to a
// direct command dispatch loop, since this domain advances on explicit
// Tick/Run(N) requests rather than a schedule of future events.

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ticksim/ticksim/sim"
	"github.com/ticksim/ticksim/sim/memory"
)

// ErrClosed is returned by Submit once the session has been closed.
var ErrClosed = errors.New("session closed")

// commandQueueDepth bounds how many inbound commands may be pending
// before Submit blocks its caller — commands are cheap and processed in
// order, so a small buffer is enough to absorb bursts without unbounded
// growth.
const commandQueueDepth = 32

type envelope struct {
	cmd   Command
	reply chan result
}

type result struct {
	snap sim.StateSnapshot
	err  error
}

// Session owns one Scheduler and serializes every inbound Command onto a
// single goroutine, broadcasting the resulting snapshot to every current
// subscriber after each state-mutating command.
type Session struct {
	log       *logrus.Logger
	scheduler *sim.Scheduler
	mem       sim.MemorySystem

	cmdCh chan envelope

	mu        sync.Mutex
	subs      map[int]chan sim.StateSnapshot
	nextSubID int

	closeOnce sync.Once
	doneCh    chan struct{}
}

// NewSession constructs a Session and starts its command loop.
func NewSession(log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{
		log:       log,
		scheduler: sim.NewScheduler(log),
		cmdCh:     make(chan envelope, commandQueueDepth),
		subs:      make(map[int]chan sim.StateSnapshot),
		doneCh:    make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case env := <-s.cmdCh:
			snap, err := env.cmd.Execute(s)
			if err == nil {
				s.broadcast(snap)
			}
			env.reply <- result{snap: snap, err: err}
		case <-s.doneCh:
			return
		}
	}
}

// Submit enqueues cmd onto the command loop and waits for its result.
// Every command that mutates state produces exactly one outbound
// broadcast before Submit returns.
func (s *Session) Submit(ctx context.Context, cmd Command) (sim.StateSnapshot, error) {
	reply := make(chan result, 1)
	select {
	case s.cmdCh <- envelope{cmd: cmd, reply: reply}:
	case <-s.doneCh:
		return sim.StateSnapshot{}, ErrClosed
	case <-ctx.Done():
		return sim.StateSnapshot{}, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.snap, r.err
	case <-ctx.Done():
		return sim.StateSnapshot{}, ctx.Err()
	}
}

// Close stops the command loop. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.doneCh) })
}

// Subscribe registers a new observer and returns its receive channel
// (capacity 1, latest-wins) plus an unsubscribe function.
func (s *Session) Subscribe() (<-chan sim.StateSnapshot, func()) {
	ch := make(chan sim.StateSnapshot, 1)
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// broadcast delivers snap to every subscriber, dropping a subscriber's
// stale pending snapshot rather than blocking the writer.
func (s *Session) broadcast(snap sim.StateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Session) snapshot() sim.StateSnapshot {
	return s.scheduler.Snapshot()
}

func (s *Session) applyRun(n int) (sim.StateSnapshot, error) {
	if _, err := s.scheduler.Run(n); err != nil {
		return sim.StateSnapshot{}, err
	}
	return s.snapshot(), nil
}

// buildConfig assembles a SchedulerConfig plus its memory subsystem (nil
// unless memMode is FULL).
func (s *Session) buildConfig(policy sim.PolicyName, tickMS, quantum int64, memMode sim.MemoryMode, frames int, memAlgo sim.ReplacementPolicy, pageSize int64, faultPenalty int) (sim.SchedulerConfig, sim.MemorySystem, error) {
	cfg := sim.SchedulerConfig{
		Policy:             policy,
		TickMS:             tickMS,
		Quantum:            quantum,
		MemoryMode:         memMode,
		PageSize:           pageSize,
		FrameCount:         frames,
		ReplacementPolicy:  memAlgo,
		GlobalFaultPenalty: faultPenalty,
	}
	if memMode != sim.MemoryFull {
		return cfg, nil, nil
	}
	sys, err := memory.New(s.log, memAlgo, frames, pageSize, faultPenalty, nil)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, sys, nil
}

func (s *Session) applyInit(c InitCommand) (sim.StateSnapshot, error) {
	cfg, memSys, err := s.buildConfig(c.Policy, c.TickMS, c.Quantum, c.MemoryMode, c.Frames, c.MemAlgo, c.PageSize, c.GlobalFaultPenalty)
	if err != nil {
		return sim.StateSnapshot{}, err
	}
	if err := s.scheduler.Configure(cfg, memSys); err != nil {
		return sim.StateSnapshot{}, err
	}
	s.mem = memSys
	for _, p := range c.Processes {
		if err := s.scheduler.AddProcess(p); err != nil {
			return sim.StateSnapshot{}, err
		}
	}
	return s.snapshot(), nil
}

func (s *Session) applyConfig(c ConfigCommand) (sim.StateSnapshot, error) {
	cur := s.scheduler.Config()
	policy, tickMS, quantum := cur.Policy, cur.TickMS, cur.Quantum
	memMode, frames, memAlgo := cur.MemoryMode, cur.FrameCount, cur.ReplacementPolicy
	pageSize, faultPenalty := cur.PageSize, cur.GlobalFaultPenalty

	if c.Policy != nil {
		policy = *c.Policy
	}
	if c.TickMS != nil {
		tickMS = *c.TickMS
	}
	if c.Quantum != nil {
		quantum = *c.Quantum
	}
	if c.MemoryMode != nil {
		memMode = *c.MemoryMode
	}
	if c.Frames != nil {
		frames = *c.Frames
	}
	if c.MemAlgo != nil {
		memAlgo = *c.MemAlgo
	}
	if c.PageSize != nil {
		pageSize = *c.PageSize
	}
	if c.GlobalFaultPenalty != nil {
		faultPenalty = *c.GlobalFaultPenalty
	}

	cfg, memSys, err := s.buildConfig(policy, tickMS, quantum, memMode, frames, memAlgo, pageSize, faultPenalty)
	if err != nil {
		return sim.StateSnapshot{}, err
	}
	if err := s.scheduler.Reconfigure(cfg, memSys); err != nil {
		return sim.StateSnapshot{}, err
	}
	s.mem = memSys
	return s.snapshot(), nil
}
