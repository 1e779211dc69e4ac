package core

// doIssue scans the Integer Queue in insertion (age) order and pushes up
// to one entry per ALU into that ALU's E1 latch, in age order. E1 is
// guaranteed empty at this point because Exec-1 ran earlier this same
// cycle and cleared it. Selected entries are removed from the Integer
// Queue; the rest keep their position and age.
func (c *CPU) doIssue() {
	if c.mode == ModeDraining {
		return
	}

	idx := c.intQueue.SelectForIssue(len(c.alus))
	for k, i := range idx {
		e := c.intQueue.entries[i]
		c.alus[k].PushE1(&issuedInstruction{
			pc:      e.PC,
			op:      e.Op,
			destReg: e.DestReg,
			a:       e.OpA.Value,
			b:       e.OpB.Value,
		})
	}
	c.intQueue.RemoveIndices(idx)
}
