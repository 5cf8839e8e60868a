package turtle

// Stack is a LIFO of saved pens. The zero value is empty and ready to use.
type Stack struct {
	states []State
}

func (s *Stack) Push(st State) { s.states = append(s.states, st) }

// Pop removes the top state. ok is false when the stack is empty.
func (s *Stack) Pop() (st State, ok bool) {
	n := len(s.states)
	if n == 0 {
		return State{}, false
	}
	st = s.states[n-1]
	s.states = s.states[:n-1]
	return st, true
}

func (s *Stack) Len() int { return len(s.states) }
