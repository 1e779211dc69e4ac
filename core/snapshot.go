package core

import "github.com/Sawii00/ooosim/statelog"

// snapshot takes a deep copy of the current cycle's state for the log.
// It must copy every slice rather than alias the live structures:
// mutation in place after snapshotting would otherwise corrupt
// previously logged cycles.
func (c *CPU) snapshot() statelog.Snapshot {
	s := statelog.Snapshot{
		PC:          c.pc,
		ExceptionPC: c.ePC,
		Exception:   c.mode == ModeDraining,
	}

	s.PhysicalRegisterFile = append([]uint64(nil), c.rf.Values[:]...)
	s.RegisterMapTable = append([]uint8(nil), c.rf.MapTable[:]...)
	s.FreeList = append([]uint8(nil), c.rf.Free...)
	s.BusyBitTable = append([]bool(nil), c.rf.Busy[:]...)

	s.DecodedPCs = make([]uint64, len(c.dir))
	for i, inst := range c.dir {
		s.DecodedPCs[i] = inst.PC
	}

	activeList := c.activeList.Snapshot()
	s.ActiveList = make([]statelog.ActiveListEntry, len(activeList))
	for i, e := range activeList {
		s.ActiveList[i] = statelog.ActiveListEntry{
			Done:               e.Done,
			Exception:          e.Exception,
			LogicalDestination: e.LogicalDest,
			OldDestination:     e.OldDest,
			PC:                 e.PC,
		}
	}

	iq := c.intQueue.Snapshot()
	s.IntegerQueue = make([]statelog.IntegerQueueEntry, len(iq))
	for i, e := range iq {
		s.IntegerQueue[i] = statelog.IntegerQueueEntry{
			DestRegister: e.DestReg,
			OpAIsReady:   e.OpA.Ready,
			OpARegTag:    e.OpA.Tag,
			OpAValue:     e.OpA.Value,
			OpBIsReady:   e.OpB.Ready,
			OpBRegTag:    e.OpB.Tag,
			OpBValue:     e.OpB.Value,
			OpCode:       e.Op.String(),
			PC:           e.PC,
		}
	}

	return s
}
