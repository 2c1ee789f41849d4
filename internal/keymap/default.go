package keymap

// Context key names shared between the suggestion widget and the
// binding When expressions.
const (
	ContextWidgetVisible       = "suggestWidgetVisible"
	ContextMultipleSuggestions = "suggestWidgetMultipleSuggestions"
	ContextAcceptOnEnter       = "acceptSuggestionOnEnter"
)

// DefaultBindings returns the default suggestion key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{Keys: "<C-Space>", Action: "suggest.trigger", Description: "Trigger suggestions", Category: "Suggest"},
		{Keys: "Tab", Action: "suggest.accept", When: ContextWidgetVisible, Description: "Accept focused suggestion", Category: "Suggest"},
		{Keys: "Enter", Action: "suggest.accept", When: ContextWidgetVisible + " && " + ContextAcceptOnEnter, Description: "Accept focused suggestion", Category: "Suggest"},
		{Keys: "Esc", Action: "suggest.cancel", When: ContextWidgetVisible, Description: "Dismiss suggestions", Category: "Suggest"},
		{Keys: "<C-n>", Action: "suggest.next", When: ContextWidgetVisible, Description: "Focus next suggestion", Category: "Suggest"},
		{Keys: "<C-p>", Action: "suggest.previous", When: ContextWidgetVisible, Description: "Focus previous suggestion", Category: "Suggest"},
		{Keys: "PageDown", Action: "suggest.nextPage", When: ContextWidgetVisible + " && " + ContextMultipleSuggestions, Description: "Focus next page", Category: "Suggest"},
		{Keys: "PageUp", Action: "suggest.previousPage", When: ContextWidgetVisible + " && " + ContextMultipleSuggestions, Description: "Focus previous page", Category: "Suggest"},
		{Keys: "<C-S-Space>", Action: "suggest.toggleDetails", When: ContextWidgetVisible, Description: "Toggle suggestion details", Category: "Suggest"},
	}
}
