package core

import "fmt"

// doExec1 shifts every ALU's E1 latch into E2.
func (c *CPU) doExec1() {
	if c.mode == ModeDraining {
		return
	}
	for _, alu := range c.alus {
		alu.Advance()
	}
}

// doExec2 computes and publishes whatever sits in each ALU's E2 latch.
// Publication marks the Active List entry done,
// forwards the result into any waiting Integer Queue operand, and writes
// the value back into the physical register file, clearing its busy bit.
// When multiple ALUs finish in the same cycle, forwarding happens in ALU
// index order; since each physical register is produced at most once, the
// order cannot affect the final values.
func (c *CPU) doExec2() error {
	if c.mode == ModeDraining {
		return nil
	}

	for _, alu := range c.alus {
		res, ok := alu.Compute()
		if !ok {
			continue
		}

		entry := c.activeList.FindByPC(res.PC)
		if entry == nil {
			return fmt.Errorf("core: exec-2: no active list entry for in-flight instruction at pc=%d", res.PC)
		}
		entry.Done = true
		entry.Exception = res.Exception

		c.intQueue.Forward(res.DestReg, res.Value)

		c.rf.Values[res.DestReg] = res.Value
		c.rf.Busy[res.DestReg] = false
	}
	return nil
}
