package bfcode

import "fmt"

type Instruction struct {
	Op     Opcode
	Line   int
	Column int
}

func (i Instruction) Location() string {
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

func (i Instruction) String() string {
	return i.Location() + "\t" + i.Op.String()
}
