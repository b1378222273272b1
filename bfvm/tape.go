package bfvm

import "errors"

type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

const DefaultTapeCells = 30000

var (
	ErrTapeUnderflow = errors.New("tape underflow: data pointer moved below the first cell")
	ErrTapeOverflow  = errors.New("tape overflow: data pointer moved past the end of a fixed tape")
)

// Tape is the linear cell memory of one run. Growth is rightward only:
// a growable tape extends on out-of-bounds rightward movement, never
// leftward.
type Tape[C Cell] struct {
	cells    []C
	head     int
	growable bool
}

func NewTape[C Cell](cells int, growable bool) *Tape[C] {
	if cells <= 0 {
		cells = DefaultTapeCells
	}
	return &Tape[C]{
		cells:    make([]C, cells),
		growable: growable,
	}
}

func (t *Tape[C]) MoveRight() error {
	t.head++
	if t.head < len(t.cells) {
		return nil
	}
	if !t.growable {
		return ErrTapeOverflow
	}
	t.grow(t.head + 1)
	return nil
}

func (t *Tape[C]) MoveLeft() error {
	if t.head == 0 {
		return ErrTapeUnderflow
	}
	t.head--
	return nil
}

func (t *Tape[C]) grow(min int) {
	newCap := len(t.cells) * 2
	if newCap < min {
		newCap = min
	}
	cells := make([]C, newCap)
	copy(cells, t.cells)
	t.cells = cells
}

// Increment wraps around at the cell's bit width, never an error.
func (t *Tape[C]) Increment() {
	t.cells[t.head]++
}

func (t *Tape[C]) Decrement() {
	t.cells[t.head]--
}

func (t *Tape[C]) Current() C {
	return t.cells[t.head]
}

func (t *Tape[C]) SetCurrent(v C) {
	t.cells[t.head] = v
}

func (t *Tape[C]) Head() int {
	return t.head
}

func (t *Tape[C]) Len() int {
	return len(t.cells)
}

func (t *Tape[C]) Cells() []C {
	return t.cells
}
