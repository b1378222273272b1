package bfvm

import (
	"io"
	"log/slog"
	"os"

	"github.com/reusee/bft/logs"
)

// VM owns one tape for one run. Input and Output are the byte streams
// the ',' and '.' opcodes operate on.
type VM[C Cell] struct {
	Tape   *Tape[C]
	IP     int
	Steps  int
	Input  io.Reader
	Output io.Writer
	Logger logs.Logger
}

func NewVM[C Cell](cells int, growable bool) *VM[C] {
	return &VM[C]{
		Tape:   NewTape[C](cells, growable),
		Input:  os.Stdin,
		Output: os.Stdout,
	}
}

func (v *VM[C]) logger() logs.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.New(slog.DiscardHandler)
}
