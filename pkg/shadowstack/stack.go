package shadowstack

import (
	"fmt"

	"github.com/fabic/libcsdbg/pkg/csdbgerr"
)

// Stack is a LIFO of CallRecord. Push always succeeds, so recursion
// simply yields multiple call records with equal fields rather than
// being rejected as a duplicate.
type Stack struct {
	// records[len-1] is the top of the stack (the most recently called
	// function), matching the original's peek(0) == top.
	records []CallRecord
}

// Push adds a new call record on top of the stack.
func (s *Stack) Push(r CallRecord) {
	s.records = append(s.records, r)
}

// Pop removes the top call record. It is a no-op on an empty stack,
// mirroring the original's __D_ASSERT-guarded, best-effort pop.
func (s *Stack) Pop() {
	if len(s.records) == 0 {
		return
	}
	s.records = s.records[:len(s.records)-1]
}

// Peek returns the call record at offset i from the top (Peek(0) is the
// top / most recent call). It returns ErrArgument if i is out of bounds.
func (s *Stack) Peek(i int) (CallRecord, error) {
	n := len(s.records)
	if i < 0 || i >= n {
		return CallRecord{}, fmt.Errorf("%w: offset out of stack bounds (%d >= %d)", csdbgerr.ErrArgument, i, n)
	}
	return s.records[n-1-i], nil
}

// Depth returns the number of call records currently on the stack.
func (s *Stack) Depth() int {
	return len(s.records)
}

// Foreach invokes fn for every call record, from top (offset 0) down to
// the bottom, matching the original's stack::foreach traversal order.
func (s *Stack) Foreach(fn func(offset int, r CallRecord)) {
	n := len(s.records)
	for i := 0; i < n; i++ {
		fn(i, s.records[n-1-i])
	}
}
