package runtime

import "github.com/aretw0/pushdown/pkg/domain"

// Stack is the automaton's LIFO memory. Its bottom marker is permanent.
type Stack struct {
	items []domain.Symbol
}

// NewStack returns a stack holding only the bottom marker.
func NewStack(bottom domain.Symbol) *Stack {
	return &Stack{items: []domain.Symbol{bottom}}
}

// Push places sym on top. It never fails.
func (s *Stack) Push(sym domain.Symbol) {
	s.items = append(s.items, sym)
}

// Pop removes and returns the top symbol.
// It returns domain.ErrStackUnderflow if only the bottom marker remains.
func (s *Stack) Pop() (domain.Symbol, error) {
	if len(s.items) <= 1 {
		return "", domain.ErrStackUnderflow
	}
	last := len(s.items) - 1
	sym := s.items[last]
	s.items = s.items[:last]
	return sym, nil
}

// Peek returns the top symbol, which is the bottom marker on an otherwise empty stack.
func (s *Stack) Peek() domain.Symbol {
	return s.items[len(s.items)-1]
}

// Depth is the number of symbols above the bottom marker.
func (s *Stack) Depth() int {
	return len(s.items) - 1
}

// Snapshot returns a copy of the contents, bottom to top.
func (s *Stack) Snapshot() []domain.Symbol {
	out := make([]domain.Symbol, len(s.items))
	copy(out, s.items)
	return out
}

// Apply performs a rule's stack action.
func (s *Stack) Apply(action domain.StackAction) error {
	switch action.Op {
	case domain.OpPush:
		s.Push(action.Symbol)
	case domain.OpPop:
		if _, err := s.Pop(); err != nil {
			return err
		}
	}
	return nil
}
