package bfcode

import (
	"fmt"
	"iter"
	"slices"
)

// JumpTable maps matched loop instruction indices both ways, as two
// parallel slices sized to the instruction count. Non-loop entries are -1.
type JumpTable struct {
	forward  []int
	backward []int
}

// Forward returns the LoopEnd index matching the LoopStart at i.
func (t *JumpTable) Forward(i int) int {
	return t.forward[i]
}

// Backward returns the LoopStart index matching the LoopEnd at i.
func (t *JumpTable) Backward(i int) int {
	return t.backward[i]
}

// Pairs yields every (LoopStart, LoopEnd) index pair.
func (t *JumpTable) Pairs() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for start, end := range t.forward {
			if end < 0 {
				continue
			}
			if !yield(start, end) {
				break
			}
		}
	}
}

func (t *JumpTable) Equal(other *JumpTable) bool {
	return slices.Equal(t.forward, other.forward) &&
		slices.Equal(t.backward, other.backward)
}

type UnmatchedLoopEndError struct {
	Source string
	Line   int
	Column int
}

func (e *UnmatchedLoopEndError) Error() string {
	return fmt.Sprintf("%s:%d:%d: unexpected closing bracket ']'",
		e.Source, e.Line, e.Column)
}

type UnmatchedLoopStartError struct {
	Source string
	Line   int
	Column int
}

func (e *UnmatchedLoopStartError) Error() string {
	return fmt.Sprintf("%s:%d:%d: unmatched bracket '['",
		e.Source, e.Line, e.Column)
}

// Validate matches loop brackets in a single left-to-right pass and
// attaches the jump table on success. The scan stops at the first
// unmatched LoopEnd; a leftover LoopStart is reported at the innermost
// remaining one. Validating an already validated program rebuilds an
// identical table.
func (p *Program) Validate() error {
	forward := make([]int, len(p.Instructions))
	backward := make([]int, len(p.Instructions))
	for i := range forward {
		forward[i] = -1
		backward[i] = -1
	}

	var stack []int
	for idx, inst := range p.Instructions {
		switch inst.Op {

		case OpLoopStart:
			stack = append(stack, idx)

		case OpLoopEnd:
			if len(stack) == 0 {
				return &UnmatchedLoopEndError{
					Source: p.Source,
					Line:   inst.Line,
					Column: inst.Column,
				}
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			forward[start] = idx
			backward[idx] = start

		}
	}

	if len(stack) > 0 {
		inst := p.Instructions[stack[len(stack)-1]]
		return &UnmatchedLoopStartError{
			Source: p.Source,
			Line:   inst.Line,
			Column: inst.Column,
		}
	}

	p.jumps = &JumpTable{
		forward:  forward,
		backward: backward,
	}
	return nil
}
