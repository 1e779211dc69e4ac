package core

// Stats summarizes a completed or in-flight run, for operator-facing CLI
// output.
type Stats struct {
	// Cycles is the number of cycles executed so far.
	Cycles uint64
	// Committed is the number of instructions retired so far.
	Committed int
	// ProgramLength is the total number of instructions in the program.
	ProgramLength int
	// Exception is true once the machine has entered (or is still in)
	// exception-draining mode.
	Exception bool
	// ExceptionPC is the PC of the faulting instruction, valid only when
	// Exception is true.
	ExceptionPC uint64
}

// Stats reports the machine's current run statistics.
func (c *CPU) Stats() Stats {
	return Stats{
		Cycles:        c.cycle,
		Committed:     c.committed,
		ProgramLength: len(c.code),
		Exception:     c.mode == ModeDraining,
		ExceptionPC:   c.ePC,
	}
}
