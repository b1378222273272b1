package bfvm

import (
	"errors"
	"fmt"
	"io"

	"github.com/reusee/bft/bfcode"
)

type IOError struct {
	Op  bfcode.Opcode
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io failure during %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Run executes the program to completion or first error. The program is
// validated lazily if its jump table is absent. On error the tape keeps
// all side effects up to the failing instruction; there is no rollback.
func (v *VM[C]) Run(prog *bfcode.Program) error {
	jumps := prog.Jumps()
	if jumps == nil {
		if err := prog.Validate(); err != nil {
			return err
		}
		jumps = prog.Jumps()
	}

	logger := v.logger()
	logger.Debug("run",
		"source", prog.Source,
		"instructions", len(prog.Instructions),
		"cells", v.Tape.Len(),
	)

	insts := prog.Instructions
	var buf [1]byte

	for v.IP >= 0 && v.IP < len(insts) {
		inst := insts[v.IP]

		switch inst.Op {

		case bfcode.OpMoveRight:
			if err := v.Tape.MoveRight(); err != nil {
				return err
			}

		case bfcode.OpMoveLeft:
			if err := v.Tape.MoveLeft(); err != nil {
				return err
			}

		case bfcode.OpIncrement:
			v.Tape.Increment()

		case bfcode.OpDecrement:
			v.Tape.Decrement()

		case bfcode.OpInput:
			_, err := io.ReadFull(v.Input, buf[:])
			if err == nil {
				v.Tape.SetCurrent(C(buf[0]))
			} else if !errors.Is(err, io.EOF) {
				return &IOError{Op: inst.Op, Err: err}
			}
			// end of input leaves the cell unchanged

		case bfcode.OpOutput:
			buf[0] = byte(v.Tape.Current())
			if _, err := v.Output.Write(buf[:1]); err != nil {
				return &IOError{Op: inst.Op, Err: err}
			}

		case bfcode.OpLoopStart:
			if v.Tape.Current() == 0 {
				v.IP = jumps.Forward(v.IP)
			}

		case bfcode.OpLoopEnd:
			if v.Tape.Current() != 0 {
				v.IP = jumps.Backward(v.IP)
			}

		}

		v.IP++
		v.Steps++
	}

	logger.Debug("run completed",
		"source", prog.Source,
		"steps", v.Steps,
	)
	return nil
}
