package core

// doFetchDecode maintains the DIR. While draining,
// the PC is forced to the exception vector and the DIR is held empty — no
// fetches occur. Otherwise, up to dispatchWidth-|DIR| consecutive
// instructions are appended from the program, advancing PC by the count
// appended. If Rename&Dispatch (which runs earlier this same cycle) left
// the DIR full, zero instructions are fetched this cycle: the atomic
// dispatch-group rule provides backpressure implicitly.
func (c *CPU) doFetchDecode() {
	if c.mode == ModeDraining {
		c.pc = c.exceptionVectorPC
		c.dir = c.dir[:0]
		return
	}

	room := dispatchWidth - len(c.dir)
	remaining := len(c.code) - int(c.pc)
	n := room
	if remaining < n {
		n = remaining
	}

	for i := 0; i < n; i++ {
		c.dir = append(c.dir, c.code[c.pc])
		c.pc++
	}
}
