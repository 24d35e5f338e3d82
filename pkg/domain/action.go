package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// StackOp is the kind of stack mutation a rule performs.
type StackOp uint8

const (
	OpNone StackOp = iota
	OpPush
	OpPop
)

func (o StackOp) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	default:
		return "none"
	}
}

// StackAction is the stack half of a rule's right-hand side.
// Symbol is only meaningful for OpPush.
type StackAction struct {
	Op     StackOp
	Symbol Symbol
}

// Push returns an action that pushes sym on top of the stack.
func Push(sym Symbol) StackAction {
	return StackAction{Op: OpPush, Symbol: sym}
}

// Pop returns an action that removes the stack top.
func Pop() StackAction {
	return StackAction{Op: OpPop}
}

// NoOp returns an action that leaves the stack untouched.
func NoOp() StackAction {
	return StackAction{Op: OpNone}
}

// String renders the canonical row form: "push(P)", "pop" or "none".
func (a StackAction) String() string {
	if a.Op == OpPush {
		return fmt.Sprintf("push(%s)", a.Symbol)
	}
	return a.Op.String()
}

// ParseStackAction parses the row form of an action.
// Accepted spellings: "push(P)", "push P", "pop", "none", "ε" and "".
func ParseStackAction(s string) (StackAction, error) {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)

	switch lower {
	case "", "none", "ε", "epsilon", "-":
		return NoOp(), nil
	case "pop":
		return Pop(), nil
	}

	if strings.HasPrefix(lower, "push") {
		arg := strings.TrimSpace(raw[len("push"):])
		if strings.HasPrefix(arg, "(") {
			if !strings.HasSuffix(arg, ")") {
				return StackAction{}, configErrorf(KindMalformedAction, "unterminated push in %q", s)
			}
			arg = strings.TrimSpace(arg[1 : len(arg)-1])
		}
		if !Pushable(Symbol(arg)) {
			return StackAction{}, configErrorf(KindMalformedAction, "push needs exactly one symbol in %q", s)
		}
		return Push(Symbol(arg)), nil
	}

	return StackAction{}, configErrorf(KindMalformedAction, "unknown stack action %q", s)
}

// Pushable reports whether sym can be written in the "push(X)" row form:
// non-empty, with no whitespace or parentheses.
func Pushable(sym Symbol) bool {
	if sym == "" {
		return false
	}
	return strings.IndexFunc(string(sym), func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	}) < 0
}

// MarshalText encodes the action in its row form.
func (a StackAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the row form produced by MarshalText.
func (a *StackAction) UnmarshalText(text []byte) error {
	parsed, err := ParseStackAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
