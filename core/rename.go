package core

import "fmt"

// doRenameDispatch drains the DIR into the Active List and Integer Queue.
// Dispatch is all-or-nothing for the current DIR contents: if there are
// not enough Active List slots, Integer Queue slots, or free physical
// registers to admit every DIR entry, none of them dispatch this cycle.
// A dispatch group renames against the same Map Table snapshot as it
// mutates it, so a later instruction in the group observes an earlier
// instruction's freshly renamed destination as its own source operand.
func (c *CPU) doRenameDispatch() error {
	if c.mode == ModeDraining {
		return nil
	}

	n := len(c.dir)
	if n == 0 {
		return nil
	}
	if n > maxActiveList-c.activeList.Len() ||
		n > maxIntegerQueue-c.intQueue.Len() ||
		n > len(c.rf.Free) {
		return nil
	}

	for _, inst := range c.dir {
		p, ok := c.rf.PopFree()
		if !ok {
			return fmt.Errorf("core: rename&dispatch: free list exhausted at pc=%d despite admission check", inst.PC)
		}
		old := c.rf.MapTable[inst.Dest]

		aTag := c.rf.MapTable[inst.OpA]
		opA := SourceOperand{Ready: !c.rf.Busy[aTag], Tag: aTag, Value: c.rf.Values[aTag]}

		var opB SourceOperand
		isImmB := inst.OpB.IsImmediate()
		if isImmB {
			opB = SourceOperand{Ready: true, Value: inst.OpB.Value}
		} else {
			bTag := c.rf.MapTable[inst.OpB.Register()]
			opB = SourceOperand{Ready: !c.rf.Busy[bTag], Tag: bTag, Value: c.rf.Values[bTag]}
		}

		c.rf.MapTable[inst.Dest] = p
		c.rf.Busy[p] = true

		c.intQueue.Append(IntegerQueueEntry{
			DestReg:  p,
			OpA:      opA,
			OpB:      opB,
			OpBIsImm: isImmB,
			Op:       inst.Op,
			PC:       inst.PC,
		})
		c.activeList.Append(ActiveListEntry{
			PC:          inst.PC,
			LogicalDest: inst.Dest,
			OldDest:     old,
			Done:        false,
			Exception:   false,
		})
	}

	c.dir = c.dir[:0]
	return nil
}
