package core

// numLogicalRegs is the number of architectural (logical) integer registers.
const numLogicalRegs = 32

// numPhysicalRegs is the number of physical integer registers backing the
// renamer. Registers 0..31 are the initial 1:1 mapping; 32..63 begin on
// the Free List.
const numPhysicalRegs = 64

// RegisterFile bundles the renaming state shared across pipeline stages:
// the 64 physical register values, the logical-to-physical Map Table, the
// Free List of unallocated physical ids, and the Busy Bits tracking which
// physical registers are allocated but not yet written back. Modelled as
// flat arrays indexed by register id rather than a pointer graph.
type RegisterFile struct {
	// Values holds the value of every physical register as last written
	// back by Exec-2.
	Values [numPhysicalRegs]uint64
	// MapTable maps each logical register to its current physical register.
	MapTable [numLogicalRegs]uint8
	// Free is the FIFO queue of physical register ids available for
	// allocation, head first.
	Free []uint8
	// Busy marks physical registers that have been allocated as a
	// destination whose producing instruction has not yet written back.
	Busy [numPhysicalRegs]bool
}

// NewRegisterFile returns a RegisterFile in its reset state: Map Table is
// the identity mapping, Free List holds {32..63}, all values and busy bits
// are zero/false.
func NewRegisterFile() *RegisterFile {
	rf := &RegisterFile{}
	for i := 0; i < numLogicalRegs; i++ {
		rf.MapTable[i] = uint8(i)
	}
	rf.Free = make([]uint8, 0, numPhysicalRegs-numLogicalRegs)
	for p := numLogicalRegs; p < numPhysicalRegs; p++ {
		rf.Free = append(rf.Free, uint8(p))
	}
	return rf
}

// PopFree removes and returns the id at the head of the Free List. The
// second return value is false when the Free List is empty.
func (rf *RegisterFile) PopFree() (uint8, bool) {
	if len(rf.Free) == 0 {
		return 0, false
	}
	p := rf.Free[0]
	rf.Free = rf.Free[1:]
	return p, true
}

// PushFree appends a physical register id to the tail of the Free List.
func (rf *RegisterFile) PushFree(p uint8) {
	rf.Free = append(rf.Free, p)
}
