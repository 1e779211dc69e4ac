package core

import "fmt"

// checkInvariants verifies the pipeline's structural invariants (I1-I5)
// against the state left at the end of the cycle that just ran. For I3 it
// checks one direction only: no register on the Free List is busy. A
// violation is a fatal internal bug, reported with enough context to
// reproduce it.
func (c *CPU) checkInvariants() error {
	if len(c.dir) > dispatchWidth {
		return fmt.Errorf("core: invariant I1 violated: DIR has %d entries, max %d", len(c.dir), dispatchWidth)
	}
	if c.activeList.Len() > maxActiveList {
		return fmt.Errorf("core: invariant I1 violated: ActiveList has %d entries, max %d", c.activeList.Len(), maxActiveList)
	}
	if c.intQueue.Len() > maxIntegerQueue {
		return fmt.Errorf("core: invariant I1 violated: IntegerQueue has %d entries, max %d", c.intQueue.Len(), maxIntegerQueue)
	}

	if err := c.checkPartition(); err != nil {
		return err
	}

	for _, p := range c.rf.Free {
		if c.rf.Busy[p] {
			return fmt.Errorf("core: invariant I3 violated: free physical register %d is marked busy", p)
		}
	}

	for i := range c.intQueue.entries {
		e := &c.intQueue.entries[i]
		if !e.OpA.Ready && !c.rf.Busy[e.OpA.Tag] {
			return fmt.Errorf("core: invariant I4 violated: IntegerQueue entry pc=%d operand A tag=%d not ready but register not busy", e.PC, e.OpA.Tag)
		}
		if !e.OpBIsImm && !e.OpB.Ready && !c.rf.Busy[e.OpB.Tag] {
			return fmt.Errorf("core: invariant I4 violated: IntegerQueue entry pc=%d operand B tag=%d not ready but register not busy", e.PC, e.OpB.Tag)
		}
	}

	for i := 1; i < c.activeList.Len(); i++ {
		if c.activeList.At(i).PC <= c.activeList.At(i-1).PC {
			return fmt.Errorf("core: invariant I5 violated: ActiveList PC out of order at index %d", i)
		}
	}

	return nil
}

// checkPartition verifies invariant I2: the Free List, the Map Table's 32
// current targets, and every Active List entry's (superseded, not yet
// freed) old destination together partition {0..63} — each physical id
// appears in exactly one of those three roles. A register still waiting
// in the Integer Queue or live in an ALU latch is not a fourth role: its
// dest_reg is, by construction, always also either the current Map Table
// target for its logical destination or, once a younger instruction has
// renamed the same logical register, that younger Active List entry's old
// destination (renaming happens at dispatch, long before the value is
// ready), so counting it again would double-count the same physical id.
func (c *CPU) checkPartition() error {
	var seen [numPhysicalRegs]int

	for _, p := range c.rf.Free {
		seen[p]++
	}
	for _, p := range c.rf.MapTable {
		seen[p]++
	}
	for i := 0; i < c.activeList.Len(); i++ {
		seen[c.activeList.At(i).OldDest]++
	}

	for p := 0; p < numPhysicalRegs; p++ {
		if seen[p] != 1 {
			return fmt.Errorf("core: invariant I2 violated: physical register %d appears %d times across FreeList/MapTable/ActiveList.OldDest, want exactly 1", p, seen[p])
		}
	}
	return nil
}
