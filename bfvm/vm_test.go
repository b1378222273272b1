package bfvm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reusee/bft/bfcode"
	"github.com/reusee/bft/configs"
	"github.com/reusee/bft/modes"
	"github.com/reusee/dscope"
)

func run(t *testing.T, source string, input string) (*VM[uint8], string) {
	t.Helper()
	prog := bfcode.Tokenize("test.bf", []byte(source))
	vm := NewVM[uint8](0, false)
	vm.Input = strings.NewReader(input)
	var output bytes.Buffer
	vm.Output = &output
	if err := vm.Run(prog); err != nil {
		t.Fatal(err)
	}
	return vm, output.String()
}

func TestRunEmptyProgram(t *testing.T) {
	vm, output := run(t, "", "")
	if vm.Steps != 0 {
		t.Fatalf("expected 0 steps, got %d", vm.Steps)
	}
	if output != "" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestRunLoopOnce(t *testing.T) {
	// cell goes 0->1, enters the loop since nonzero, decrements to 0, exits
	vm, _ := run(t, "+[-]", "")
	if vm.Tape.Current() != 0 {
		t.Fatalf("expected cell 0, got %d", vm.Tape.Current())
	}
	if vm.Steps != 4 {
		t.Fatalf("expected 4 steps, got %d", vm.Steps)
	}
}

func TestRunSkipLoopOnZero(t *testing.T) {
	// the loop body is skipped entirely when the cell is zero
	vm, output := run(t, "[.+]", "")
	if output != "" {
		t.Fatalf("loop body executed: %q", output)
	}
	// only the LoopStart executes; the LoopEnd is jumped past
	if vm.Steps != 1 {
		t.Fatalf("expected 1 step, got %d", vm.Steps)
	}
}

func TestRunOutput(t *testing.T) {
	// 8*8+1 = 65 = 'A'
	_, output := run(t, "++++++++[>++++++++<-]>+.", "")
	if output != "A" {
		t.Fatalf("expected A, got %q", output)
	}
}

func TestRunEcho(t *testing.T) {
	_, output := run(t, ",.,.,.", "abc")
	if output != "abc" {
		t.Fatalf("expected abc, got %q", output)
	}
}

func TestInputEOFIsNoOp(t *testing.T) {
	// end of input leaves the cell unchanged
	vm, _ := run(t, "+++++,", "")
	if vm.Tape.Current() != 5 {
		t.Fatalf("expected cell 5 after EOF, got %d", vm.Tape.Current())
	}
}

func TestRunTapeOverflow(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte(">"))
	vm := NewVM[uint8](1, false)
	vm.Input = strings.NewReader("")
	vm.Output = new(bytes.Buffer)
	if err := vm.Run(prog); !errors.Is(err, ErrTapeOverflow) {
		t.Fatalf("expected ErrTapeOverflow, got %v", err)
	}
}

func TestRunTapeUnderflow(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte("<"))
	vm := NewVM[uint8](0, true)
	if err := vm.Run(prog); !errors.Is(err, ErrTapeUnderflow) {
		t.Fatalf("expected ErrTapeUnderflow, got %v", err)
	}
}

func TestRunGrowableTape(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte(">>>>>+"))
	vm := NewVM[uint8](2, true)
	if err := vm.Run(prog); err != nil {
		t.Fatal(err)
	}
	if vm.Tape.Head() != 5 {
		t.Fatalf("head at %d", vm.Tape.Head())
	}
	if vm.Tape.Current() != 1 {
		t.Fatalf("expected cell 1, got %d", vm.Tape.Current())
	}
}

func TestRunKeepsTapeOnError(t *testing.T) {
	// side effects up to the failing instruction stay, no rollback
	prog := bfcode.Tokenize("test.bf", []byte("+++<"))
	vm := NewVM[uint8](1, false)
	if err := vm.Run(prog); !errors.Is(err, ErrTapeUnderflow) {
		t.Fatalf("expected ErrTapeUnderflow, got %v", err)
	}
	if vm.Tape.Current() != 3 {
		t.Fatalf("expected cell 3, got %d", vm.Tape.Current())
	}
}

func TestRunValidatesLazily(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte("[[]"))
	vm := NewVM[uint8](0, false)
	err := vm.Run(prog)
	var unmatched *bfcode.UnmatchedLoopStartError
	if !errors.As(err, &unmatched) {
		t.Fatalf("expected UnmatchedLoopStartError, got %v", err)
	}
	if vm.Steps != 0 {
		t.Fatal("executed instructions of an invalid program")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("sink is broken")
}

func TestRunIOError(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte("+."))
	vm := NewVM[uint8](0, false)
	vm.Output = failWriter{}
	err := vm.Run(prog)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Op != bfcode.OpOutput {
		t.Fatalf("expected output op, got %v", ioErr.Op)
	}
}

func TestRunWideCells(t *testing.T) {
	prog := bfcode.Tokenize("test.bf", []byte("-"))
	vm := NewVM[uint16](1, false)
	if err := vm.Run(prog); err != nil {
		t.Fatal(err)
	}
	if vm.Tape.Current() != 65535 {
		t.Fatalf("expected 65535, got %d", vm.Tape.Current())
	}
}

func TestModule(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		newVM NewByteVM,
	) {
		vm := newVM()
		if vm.Tape.Len() != DefaultTapeCells {
			t.Fatalf("expected default tape, got %d", vm.Tape.Len())
		}
		vm.Input = strings.NewReader("")
		var output bytes.Buffer
		vm.Output = &output
		prog := bfcode.Tokenize("test.bf", []byte("+."))
		if err := vm.Run(prog); err != nil {
			t.Fatal(err)
		}
		if output.String() != "\x01" {
			t.Fatalf("got %q", output.String())
		}
	})
}
