package core_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Sawii00/ooosim/core"
	"github.com/Sawii00/ooosim/loader"
)

// program decodes a small assembly listing the way cmd/ooosim would, one
// instruction string per line, failing immediately on a bad fixture
// rather than deep in pipeline assertions.
func program(lines ...string) []core.DecodedInstruction {
	src := `["` + strings.Join(lines, `", "`) + `"]`
	if len(lines) == 0 {
		src = `[]`
	}
	code, err := loader.Load(strings.NewReader(src))
	Expect(err).NotTo(HaveOccurred())
	return code
}

var _ = Describe("CPU", func() {
	Describe("empty program", func() {
		It("emits exactly the initial reset snapshot", func() {
			cpu := core.NewCPU(program())
			log, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(log).To(HaveLen(1))

			s := log[0]
			Expect(s.PC).To(Equal(uint64(0)))
			Expect(s.Exception).To(BeFalse())
			Expect(s.ExceptionPC).To(Equal(uint64(0)))
			Expect(s.DecodedPCs).To(BeEmpty())
			Expect(s.ActiveList).To(BeEmpty())
			Expect(s.IntegerQueue).To(BeEmpty())
			Expect(s.FreeList).To(HaveLen(32))
			for i, p := range s.FreeList {
				Expect(p).To(Equal(uint8(32 + i)))
			}
			for i, p := range s.RegisterMapTable {
				Expect(p).To(Equal(uint8(i)))
			}
			for _, busy := range s.BusyBitTable {
				Expect(busy).To(BeFalse())
			}
		})
	})

	Describe("single add", func() {
		It("retires the instruction and publishes its result", func() {
			cpu := core.NewCPU(program("add x1, x0, x0"))
			log, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())

			final := log[len(log)-1]
			Expect(cpu.Committed()).To(Equal(1))
			Expect(final.Exception).To(BeFalse())
			Expect(final.RegisterMapTable[1]).To(Equal(uint8(32)))
			Expect(final.PhysicalRegisterFile[32]).To(Equal(uint64(0)))
			Expect(final.FreeList).To(ContainElement(uint8(1)))
			Expect(final.BusyBitTable[32]).To(BeFalse())
		})
	})

	Describe("RAW dependency", func() {
		It("holds the dependent instruction until its producer writes back", func() {
			cpu := core.NewCPU(program("addi x1, x0, 5", "add x2, x1, x1"))
			log, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())

			final := log[len(log)-1]
			Expect(cpu.Committed()).To(Equal(2))
			Expect(final.RegisterMapTable[1]).To(Equal(uint8(32)))
			Expect(final.RegisterMapTable[2]).To(Equal(uint8(33)))
			Expect(final.PhysicalRegisterFile[32]).To(Equal(uint64(5)))
			Expect(final.PhysicalRegisterFile[33]).To(Equal(uint64(10)))

			// Before the producer writes back, the Integer Queue must hold
			// the dependent instruction with its A operand not ready.
			foundWaiting := false
			for _, s := range log {
				for _, q := range s.IntegerQueue {
					if q.PC == 1 && !q.OpAIsReady {
						foundWaiting = true
					}
				}
			}
			Expect(foundWaiting).To(BeTrue())
		})
	})

	Describe("divide by zero", func() {
		It("rolls back through the exception drain and halts at the vector PC", func() {
			cpu := core.NewCPU(program("divu x1, x0, x0"))
			log, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())

			final := log[len(log)-1]
			Expect(final.Exception).To(BeTrue())
			Expect(final.ExceptionPC).To(Equal(uint64(0)))
			Expect(final.PC).To(Equal(uint64(core.ExceptionVectorPC)))
			Expect(final.RegisterMapTable[1]).To(Equal(uint8(1)))
			Expect(final.FreeList).To(ContainElement(uint8(32)))
			Expect(final.BusyBitTable[32]).To(BeFalse())
			Expect(final.ActiveList).To(BeEmpty())
			Expect(final.IntegerQueue).To(BeEmpty())
			Expect(cpu.Committed()).To(Equal(0))
		})

		It("never retires an instruction past the faulting one", func() {
			cpu := core.NewCPU(program("divu x1, x0, x0", "add x2, x0, x0"))
			_, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Committed()).To(Equal(0))
		})
	})

	Describe("a program much larger than any single structure's capacity", func() {
		It("completes and commits every instruction without an invariant violation", func() {
			lines := make([]string, 40)
			for i := range lines {
				lines[i] = "addi x1, x0, 1"
			}
			cpu := core.NewCPU(program(lines...))
			_, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Committed()).To(Equal(40))
		})
	})

	Describe("operand forwarding within the Integer Queue", func() {
		It("produces a strictly increasing schedule of writebacks for a dependency chain", func() {
			lines := []string{"addi x1, x0, 1"}
			for i := 0; i < 7; i++ {
				lines = append(lines, "add x1, x1, x1")
			}
			cpu := core.NewCPU(program(lines...))
			log, err := cpu.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(cpu.Committed()).To(Equal(8))

			final := log[len(log)-1]
			Expect(final.PhysicalRegisterFile[39]).To(Equal(uint64(128)))

			// The k-th instruction writes 1<<k into physical register 32+k;
			// find the snapshot at which each value first appears.
			writeback := make([]int, 8)
			for k := range writeback {
				for i, s := range log {
					if s.PhysicalRegisterFile[32+k] == uint64(1)<<k {
						writeback[k] = i
						break
					}
				}
			}
			for k := 1; k < len(writeback); k++ {
				Expect(writeback[k]).To(BeNumerically(">", writeback[k-1]))
			}
		})
	})
})
