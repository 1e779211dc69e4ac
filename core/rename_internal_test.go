package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// These specs exercise doRenameDispatch's atomic dispatch-group rule
// directly against hand-built structure occupancy, rather than deriving
// the occupancy by running a program for a specific number of cycles.

func fourAddis() []DecodedInstruction {
	code := make([]DecodedInstruction, 4)
	for i := range code {
		code[i] = DecodedInstruction{PC: uint64(i), Op: OpAddi, Dest: 1, OpA: 0, OpB: Imm(1)}
	}
	return code
}

var _ = Describe("doRenameDispatch atomicity", func() {
	It("dispatches nothing when the Free List cannot cover the whole DIR", func() {
		c := NewCPU(nil)
		c.dir = fourAddis()
		c.rf.Free = []uint8{40, 41, 42}

		Expect(c.doRenameDispatch()).To(Succeed())

		Expect(c.dir).To(HaveLen(4))
		Expect(c.activeList.Len()).To(Equal(0))
		Expect(c.intQueue.Len()).To(Equal(0))
		Expect(c.rf.Free).To(HaveLen(3))
	})

	It("dispatches the whole group when every structure has room", func() {
		c := NewCPU(nil)
		c.dir = fourAddis()
		c.rf.Free = []uint8{40, 41, 42, 43, 44}

		Expect(c.doRenameDispatch()).To(Succeed())

		Expect(c.dir).To(BeEmpty())
		Expect(c.activeList.Len()).To(Equal(4))
		Expect(c.intQueue.Len()).To(Equal(4))
		Expect(c.rf.Free).To(HaveLen(1))
	})

	It("dispatches nothing when the Active List cannot cover the whole DIR", func() {
		c := NewCPU(nil)
		c.dir = fourAddis()
		c.rf.Free = []uint8{40, 41, 42, 43, 44}
		for i := 0; i < 30; i++ {
			c.activeList.Append(ActiveListEntry{PC: uint64(100 + i)})
		}

		Expect(c.doRenameDispatch()).To(Succeed())

		Expect(c.dir).To(HaveLen(4))
		Expect(c.intQueue.Len()).To(Equal(0))
	})

	It("dispatches nothing when the Integer Queue cannot cover the whole DIR", func() {
		c := NewCPU(nil)
		c.dir = fourAddis()
		c.rf.Free = []uint8{40, 41, 42, 43, 44}
		for i := 0; i < 30; i++ {
			c.intQueue.Append(IntegerQueueEntry{PC: uint64(100 + i)})
		}

		Expect(c.doRenameDispatch()).To(Succeed())

		Expect(c.dir).To(HaveLen(4))
		Expect(c.activeList.Len()).To(Equal(0))
	})

	It("dispatches nothing while draining, regardless of available capacity", func() {
		c := NewCPU(nil)
		c.dir = fourAddis()
		c.rf.Free = []uint8{40, 41, 42, 43, 44}
		c.mode = ModeDraining

		Expect(c.doRenameDispatch()).To(Succeed())

		Expect(c.dir).To(HaveLen(4))
		Expect(c.activeList.Len()).To(Equal(0))
	})

	It("lets a later instruction in the same group see an earlier one's renamed destination", func() {
		c := NewCPU(nil)
		c.dir = []DecodedInstruction{
			{PC: 0, Op: OpAddi, Dest: 1, OpA: 0, OpB: Imm(1)},
			{PC: 1, Op: OpAdd, Dest: 2, OpA: 1, OpB: Reg(1)},
		}
		c.rf.Free = []uint8{40, 41, 42}

		Expect(c.doRenameDispatch()).To(Succeed())

		entries := c.intQueue.Snapshot()
		Expect(entries).To(HaveLen(2))
		// The second instruction's operand A/B tags must point at the
		// first instruction's freshly allocated destination (40), not the
		// pre-group mapping for logical register 1.
		Expect(entries[1].OpA.Tag).To(Equal(uint8(40)))
		Expect(entries[1].OpB.Tag).To(Equal(uint8(40)))
	})
})
