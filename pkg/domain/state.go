package domain

// State identifies a stage of the conversation (e.g. "q_start", "q_ordering").
type State string

// Symbol is an element of the stack alphabet.
type Symbol string

// Command is an input token consumed by one simulation step.
type Command string

// Configuration is the automaton's entire memory at a point in time.
// Stack is ordered bottom to top.
type Configuration struct {
	State State    `json:"state"`
	Stack []Symbol `json:"stack"`
}

// Top returns the topmost symbol of the configuration's stack, or "" if it is empty.
func (c Configuration) Top() Symbol {
	if len(c.Stack) == 0 {
		return ""
	}
	return c.Stack[len(c.Stack)-1]
}

// Commands converts plain strings into a command sequence.
func Commands(tokens ...string) []Command {
	cmds := make([]Command, len(tokens))
	for i, t := range tokens {
		cmds[i] = Command(t)
	}
	return cmds
}
