// Package loader turns a program description into decoded instructions the
// core package can run. Programs are described as a JSON array of assembly
// strings, one per instruction, in program order; an instruction's index in
// the array is its PC.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Sawii00/ooosim/core"
)

// maxProgramLength caps the number of instructions a single program may
// contain; a longer program is rejected with an error. The check runs
// after the whole JSON array has been decoded.
const maxProgramLength = 1 << 31

// Load reads a JSON array of instruction strings from r and decodes it into
// a program core.NewCPU can run. Each string has the form
// "opcode dest, opA, opB", where dest and opA are register tokens ("x0"
// through "x31") and opB is either a register token or a decimal immediate,
// depending on opcode.
func Load(r io.Reader) ([]core.DecodedInstruction, error) {
	var lines []string
	if err := json.NewDecoder(r).Decode(&lines); err != nil {
		return nil, fmt.Errorf("loader: decode program: %w", err)
	}
	if len(lines) > maxProgramLength {
		return nil, fmt.Errorf("loader: program has %d instructions, exceeds limit of %d", len(lines), maxProgramLength)
	}

	code := make([]core.DecodedInstruction, len(lines))
	for pc, line := range lines {
		inst, err := parseInstruction(uint64(pc), line)
		if err != nil {
			return nil, fmt.Errorf("loader: instruction %d: %w", pc, err)
		}
		code[pc] = inst
	}
	return code, nil
}

// LoadFile opens path and decodes it via Load.
func LoadFile(path string) ([]core.DecodedInstruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open program file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// parseInstruction decodes a single "opcode dest, opA, opB" line, mirroring
// the original reference parser's split-on-space-then-comma approach.
func parseInstruction(pc uint64, line string) (core.DecodedInstruction, error) {
	spaceIdx := strings.Index(line, " ")
	if spaceIdx < 0 {
		return core.DecodedInstruction{}, fmt.Errorf("missing operands in %q", line)
	}
	mnemonic := strings.TrimSpace(line[:spaceIdx])
	op, ok := core.ParseOpcode(mnemonic)
	if !ok {
		return core.DecodedInstruction{}, fmt.Errorf("unknown opcode %q", mnemonic)
	}

	fields := strings.Split(line[spaceIdx:], ",")
	if len(fields) != 3 {
		return core.DecodedInstruction{}, fmt.Errorf("expected 3 comma-separated operands in %q, found %d", line, len(fields))
	}
	destTok := strings.TrimSpace(fields[0])
	aTok := strings.TrimSpace(fields[1])
	bTok := strings.TrimSpace(fields[2])

	dest, err := parseRegister(destTok)
	if err != nil {
		return core.DecodedInstruction{}, fmt.Errorf("destination operand: %w", err)
	}
	opA, err := parseRegister(aTok)
	if err != nil {
		return core.DecodedInstruction{}, fmt.Errorf("first operand: %w", err)
	}
	opB, err := parseOperandB(bTok)
	if err != nil {
		return core.DecodedInstruction{}, fmt.Errorf("second operand: %w", err)
	}
	if opB.IsImmediate() != (op == core.OpAddi) {
		return core.DecodedInstruction{}, fmt.Errorf("second operand %q does not fit opcode %q: only addi takes an immediate", bTok, mnemonic)
	}

	return core.DecodedInstruction{
		PC:   pc,
		Op:   op,
		Dest: dest,
		OpA:  opA,
		OpB:  opB,
	}, nil
}

// parseRegister decodes a register token of the form "xN", 0 <= N <= 31.
func parseRegister(tok string) (uint8, error) {
	if !strings.HasPrefix(tok, "x") {
		return 0, fmt.Errorf("malformed register token %q", tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("malformed register token %q: %w", tok, err)
	}
	if n > 31 {
		return 0, fmt.Errorf("register token %q out of range 0..31", tok)
	}
	return uint8(n), nil
}

// parseOperandB decodes the third field of an instruction line, which is
// either a register token or a decimal (possibly negative, sign-extended
// into 64 bits) immediate.
func parseOperandB(tok string) (core.Operand, error) {
	if strings.HasPrefix(tok, "x") {
		reg, err := parseRegister(tok)
		if err != nil {
			return core.Operand{}, err
		}
		return core.Reg(reg), nil
	}

	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return core.Operand{}, fmt.Errorf("malformed immediate %q: %w", tok, err)
	}
	return core.Imm(uint64(v)), nil
}
