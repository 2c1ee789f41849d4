// Package keymap holds the suggestion key bindings, context keys, and
// the action registry the host dispatches through. Evaluation of When
// expressions is the host's job; bindings carry them as opaque text.
package keymap

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "Tab", "<C-Space>", "<C-n>"
	Keys string

	// Action is the command to execute.
	// Examples: "suggest.trigger", "suggest.accept"
	Action string

	// When is a condition expression that must be true for this
	// binding. Examples: "suggestWidgetVisible", "!editorReadonly"
	When string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithWhen sets the condition for this binding.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the display category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}
