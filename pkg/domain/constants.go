package domain

const (
	// DefaultBottom is the bottom marker used when a table does not name one.
	DefaultBottom Symbol = "Z0"

	// NotConsumed is displayed in place of the input of a step that halted
	// before consuming its command.
	NotConsumed = "—"

	// EmptyStack is how FormatStack renders a stack with no symbols at all.
	EmptyStack = "[] (Empty)"
)
