package core

import (
	"io"
	"log"

	"github.com/Sawii00/ooosim/statelog"
)

// ExceptionVectorPC is the PC Fetch&Decode forces onto the frontend while
// the machine is draining after an exception.
const ExceptionVectorPC = 0x10000

// dispatchWidth is the width of the DIR and therefore of Rename&Dispatch,
// Issue's ALU count, and Commit's per-cycle scan.
const dispatchWidth = 4

// maxActiveList and maxIntegerQueue are the capacities of the Active List
// and Integer Queue, independent of dispatchWidth, which only bounds how
// many entries move per cycle.
const (
	maxActiveList   = 32
	maxIntegerQueue = 32
)

// Mode is the pipeline's current operating mode, encoded explicitly
// rather than inferred from flags scattered across structures.
type Mode uint8

const (
	// ModeRunning is normal operation: fetch, dispatch, issue, execute,
	// and in-order commit all proceed.
	ModeRunning Mode = iota
	// ModeDraining is the post-exception rollback window: no fetch, no
	// dispatch, no issue, no execution — only tail-to-head Active List
	// unwinding.
	ModeDraining
)

// CPU holds the full architectural and microarchitectural state of the
// simulated machine and drives it one cycle at a time.
type CPU struct {
	code []DecodedInstruction
	dir  []DecodedInstruction

	rf         *RegisterFile
	activeList *ActiveList
	intQueue   *IntegerQueue
	alus       [4]*ALU

	pc   uint64
	mode Mode
	ePC  uint64

	exceptionVectorPC uint64

	cycle     uint64
	committed int

	logger *log.Logger
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithExceptionVectorPC overrides the PC forced onto the frontend while
// draining. Defaults to ExceptionVectorPC (0x10000).
func WithExceptionVectorPC(pc uint64) Option {
	return func(c *CPU) { c.exceptionVectorPC = pc }
}

// WithLogger attaches a diagnostic logger. The CPU writes one line when it
// detects an architectural exception and transitions into draining mode;
// it is silent otherwise. Defaults to discarding all output.
func WithLogger(l *log.Logger) Option {
	return func(c *CPU) { c.logger = l }
}

// NewCPU constructs a CPU in its reset state for the given program.
func NewCPU(code []DecodedInstruction, opts ...Option) *CPU {
	c := &CPU{
		code:              code,
		rf:                NewRegisterFile(),
		activeList:        &ActiveList{},
		intQueue:          &IntegerQueue{},
		exceptionVectorPC: ExceptionVectorPC,
		logger:            log.New(io.Discard, "", 0),
	}
	for i := range c.alus {
		c.alus[i] = &ALU{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PC returns the current program counter.
func (c *CPU) PC() uint64 { return c.pc }

// Mode returns the current pipeline mode.
func (c *CPU) Mode() Mode { return c.mode }

// Committed returns the number of instructions retired so far.
func (c *CPU) Committed() int { return c.committed }

// Run drives the machine to completion, returning the full state log
// (one initial snapshot plus one per executed cycle) and any fatal
// internal error encountered along the way. Architectural exceptions
// (divide-by-zero) are not errors: they are handled by draining and
// reported only through the log's Exception/ExceptionPC fields.
func (c *CPU) Run() (statelog.Log, error) {
	log := statelog.Log{c.snapshot()}
	for !c.terminated() {
		if err := c.Tick(); err != nil {
			return log, err
		}
		log = append(log, c.snapshot())
	}
	return log, nil
}

// terminated reports whether the simulation has reached one of its two
// terminal conditions: every instruction committed, or exception rollback
// has fully drained the Active List.
func (c *CPU) terminated() bool {
	if c.mode == ModeDraining {
		return c.activeList.Len() == 0
	}
	return c.committed == len(c.code)
}

// Tick advances the machine by exactly one simulated cycle, running the
// six stages in reverse program order — Commit, Exec-2, Exec-1, Issue,
// Rename&Dispatch, Fetch&Decode. This ordering is the correctness
// mechanism, not an optimization: each later stage observes the state
// left by the end of the previous cycle before an earlier stage
// overwrites it, so no per-stage latch pair is needed.
func (c *CPU) Tick() error {
	c.doCommit()
	if err := c.doExec2(); err != nil {
		return err
	}
	c.doExec1()
	c.doIssue()
	if err := c.doRenameDispatch(); err != nil {
		return err
	}
	c.doFetchDecode()

	c.cycle++
	return c.checkInvariants()
}
