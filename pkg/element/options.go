package element

// Options configures a new handle.
type Options struct {
	// Description labels the element in logs and error messages
	Description string

	// Popup routes every operation to the captured popup window
	Popup bool

	// PageIndex routes operations to the numbered tab when Popup is false
	PageIndex int
}

// FindOptions configures Find.
type FindOptions struct {
	// Index selects among the raw matches (0 = first)
	Index int

	// HasText keeps only matches whose text contains this value
	HasText string

	// TextIndex selects among the text-filtered matches when HasText is set
	TextIndex int
}

// SiblingOptions configures Sibling.
type SiblingOptions struct {
	// Index selects among the matching siblings (0 = first)
	Index int
}

// ContainsOptions configures Contains.
type ContainsOptions struct {
	// Index selects among the matches (0 = first)
	Index int
}

// HasTextOptions configures HasText.
type HasTextOptions struct {
	// Exact requires the whole trimmed text to equal the value
	Exact bool

	// Index selects among the matches (0 = first)
	Index int
}

// ChildHasTextOptions configures ChildHasText.
type ChildHasTextOptions struct {
	// Exact requires a child's whole trimmed text to equal the value
	Exact bool
}

// ClickOptions configures Click and DblClick.
type ClickOptions struct {
	// Force bypasses the engine's actionability checks
	Force bool
}

// CheckOptions configures Check and Uncheck.
type CheckOptions struct {
	// Force bypasses the engine's actionability checks
	Force bool
}

// SetValueOptions configures SetValue.
type SetValueOptions struct {
	// Force bypasses the engine's actionability checks
	Force bool
}

// TypeOptions configures Type and PressSequentially.
type TypeOptions struct {
	// Delay in milliseconds between keystrokes
	Delay float64
}

// AllOptions configures All.
type AllOptions struct {
	// HasText keeps only matches whose text contains this value
	HasText string
}
