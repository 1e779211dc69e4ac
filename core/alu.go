package core

// issuedInstruction is the payload an ALU carries through its two pipeline
// latches: the operand values already resolved by Issue, ready to compute.
type issuedInstruction struct {
	pc      uint64
	op      Opcode
	destReg uint8
	a, b    uint64
}

// Result describes what Exec-2 computed when an ALU published an
// instruction's result.
type Result struct {
	PC        uint64
	DestReg   uint8
	Value     uint64
	Exception bool
}

// ALU is a two-stage shift-register execution unit: Exec-1 shifts E1 into
// E2, Exec-2 computes and publishes whatever sits in E2. Four of these
// run in parallel.
type ALU struct {
	e1 *issuedInstruction
	e2 *issuedInstruction
}

// PushE1 places a freshly issued instruction into the E1 latch. The
// caller (Issue) is responsible for the invariant that E1 is empty.
func (a *ALU) PushE1(ii *issuedInstruction) {
	a.e1 = ii
}

// Advance performs Exec-1: shifts E1 into E2 and leaves E1 empty.
func (a *ALU) Advance() {
	a.e2 = a.e1
	a.e1 = nil
}

// Compute performs Exec-2: evaluates whatever instruction sits in E2 and
// clears the latch. The second return value is false when E2 is empty.
func (a *ALU) Compute() (Result, bool) {
	ii := a.e2
	if ii == nil {
		return Result{}, false
	}
	a.e2 = nil

	res := Result{PC: ii.pc, DestReg: ii.destReg}
	switch ii.op {
	case OpAdd, OpAddi:
		res.Value = ii.a + ii.b
	case OpSub:
		res.Value = ii.a - ii.b
	case OpMulu:
		res.Value = ii.a * ii.b
	case OpDivu:
		if ii.b == 0 {
			res.Exception = true
		} else {
			res.Value = ii.a / ii.b
		}
	case OpRemu:
		if ii.b == 0 {
			res.Exception = true
		} else {
			res.Value = ii.a % ii.b
		}
	}
	return res, true
}

// Reset clears both latches, used when the machine enters exception mode.
func (a *ALU) Reset() {
	a.e1 = nil
	a.e2 = nil
}
