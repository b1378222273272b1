package bfcode

type Opcode uint8

const (
	OpMoveLeft Opcode = iota
	OpMoveRight
	OpIncrement
	OpDecrement
	OpInput
	OpOutput
	OpLoopStart
	OpLoopEnd
)

func OpcodeFromByte(c byte) (Opcode, bool) {
	switch c {
	case '<':
		return OpMoveLeft, true
	case '>':
		return OpMoveRight, true
	case '+':
		return OpIncrement, true
	case '-':
		return OpDecrement, true
	case ',':
		return OpInput, true
	case '.':
		return OpOutput, true
	case '[':
		return OpLoopStart, true
	case ']':
		return OpLoopEnd, true
	}
	return 0, false
}

func (o Opcode) String() string {
	switch o {
	case OpMoveLeft:
		return "move left one cell"
	case OpMoveRight:
		return "move right one cell"
	case OpIncrement:
		return "increment current cell"
	case OpDecrement:
		return "decrement current cell"
	case OpInput:
		return "accept one byte of input"
	case OpOutput:
		return "output the current byte"
	case OpLoopStart:
		return "start looping"
	case OpLoopEnd:
		return "finish looping"
	}
	return "invalid opcode"
}
