package core

// doCommit dispatches to the normal or exception-draining commit
// procedure, selected by the current Mode.
func (c *CPU) doCommit() {
	if c.mode == ModeDraining {
		c.commitDraining()
		return
	}
	c.commitNormal()
}

// commitNormal scans up to dispatchWidth entries from the Active List
// head in program order. It stops at the first not-yet-done entry (the
// in-order commit barrier). A done, non-excepting entry retires: its old
// physical destination returns to the Free List and it leaves the Active
// List. A done, excepting entry is the faulting instruction: it is not
// retired. Instead the machine transitions to ModeDraining in the same
// cycle the fault is detected (the single-phase choice recorded in
// DESIGN.md) — the exception flag is raised, the fault PC is recorded,
// all four ALUs are reset, and the Integer Queue is wiped — and commit
// stops for this cycle.
func (c *CPU) commitNormal() {
	for i := 0; i < dispatchWidth && c.activeList.Len() > 0; i++ {
		e := c.activeList.At(0)
		if !e.Done {
			break
		}
		if e.Exception {
			c.mode = ModeDraining
			c.ePC = e.PC
			c.logger.Printf("core: exception detected at pc=%d, entering draining mode", e.PC)
			for _, alu := range c.alus {
				alu.Reset()
			}
			c.intQueue.Clear()
			return
		}

		retired := c.activeList.PopFront()
		c.rf.PushFree(retired.OldDest)
		c.committed++
	}
}

// commitDraining rolls back up to dispatchWidth entries from the Active
// List tail per cycle. Each rolled-back entry restores the Map Table to
// its pre-renaming mapping, frees the physical register that had been
// mapped to it, and clears that register's busy bit. The faulting
// instruction itself is unwound as part of this tail sweep. The exception
// flag remains set once the Active List empties; CPU.terminated observes
// that emptiness to end the simulation.
func (c *CPU) commitDraining() {
	n := c.activeList.Len()
	if n > dispatchWidth {
		n = dispatchWidth
	}
	for i := 0; i < n; i++ {
		e := c.activeList.PopBack()
		current := c.rf.MapTable[e.LogicalDest]
		c.rf.MapTable[e.LogicalDest] = e.OldDest
		c.rf.PushFree(current)
		c.rf.Busy[current] = false
	}
}
