package ast

import "math"

// Sequencer hands out node sequence numbers for one compilation unit.
// Numbers start at 1 and strictly increase; they are never reused.
type Sequencer struct {
	last uint32
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint32 {
	if s.last == math.MaxUint32 {
		panic("ast: node sequence overflow")
	}
	s.last++
	return s.last
}

// Last returns the most recently issued number, 0 if none.
func (s *Sequencer) Last() uint32 {
	return s.last
}
