package bfcode

import (
	"io"
	"os"
)

// Program is a tokenized source. Instructions are immutable after
// construction; the jump table is attached once by a successful Validate.
type Program struct {
	Source       string
	Instructions []Instruction

	jumps *JumpTable
}

// Tokenize never fails. Bytes that are not one of the eight opcode
// characters are comments: they consume a column but emit nothing.
// Lines and columns are 1-based.
func Tokenize(source string, data []byte) *Program {
	prog := &Program{
		Source: source,
	}
	line := 1
	column := 1
	for _, c := range data {
		if c == '\n' {
			line++
			column = 1
			continue
		}
		// a '\r' left by CRLF input is consumed here as a comment byte
		if op, ok := OpcodeFromByte(c); ok {
			prog.Instructions = append(prog.Instructions, Instruction{
				Op:     op,
				Line:   line,
				Column: column,
			})
		}
		column++
	}
	return prog
}

func LoadReader(source string, r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Tokenize(source, data), nil
}

func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Tokenize(path, data), nil
}

// Jumps returns the jump table, or nil if the program has not been
// validated yet.
func (p *Program) Jumps() *JumpTable {
	return p.jumps
}
