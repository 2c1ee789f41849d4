package suggest

// DefaultPageSize is the page-step size used when none is configured.
const DefaultPageSize = 10

// NavigationState is the candidate-list cursor: pure index arithmetic
// over the candidate count with wraparound. It has no side effects
// beyond the index itself.
type NavigationState struct {
	index    int
	length   int
	pageSize int
}

// NewNavigationState creates navigation state with the given page size.
func NewNavigationState(pageSize int) *NavigationState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &NavigationState{pageSize: pageSize}
}

// Reset points the state at a new candidate list of length n, focusing
// the given initial index (clamped into range).
func (n *NavigationState) Reset(length, initial int) {
	n.length = length
	if length == 0 {
		n.index = 0
		return
	}
	if initial < 0 {
		initial = 0
	}
	if initial >= length {
		initial = length - 1
	}
	n.index = initial
}

// Clear empties the state.
func (n *NavigationState) Clear() {
	n.length = 0
	n.index = 0
}

// Index returns the focused index. ok is false when the list is empty.
func (n *NavigationState) Index() (int, bool) {
	if n.length == 0 {
		return 0, false
	}
	return n.index, true
}

// Len returns the candidate count the state navigates over.
func (n *NavigationState) Len() int {
	return n.length
}

// Next advances the focus by one, wrapping to the first element.
func (n *NavigationState) Next() {
	if n.length == 0 {
		return
	}
	n.index = (n.index + 1) % n.length
}

// Prev moves the focus back by one, wrapping to the last element.
func (n *NavigationState) Prev() {
	if n.length == 0 {
		return
	}
	n.index = (n.index - 1 + n.length) % n.length
}

// NextPage jumps forward a page, clamping to the last element; only
// when already on the last element does it wrap to the first.
func (n *NavigationState) NextPage() {
	if n.length == 0 {
		return
	}
	if n.index == n.length-1 {
		n.index = 0
		return
	}
	n.index += n.pageSize
	if n.index > n.length-1 {
		n.index = n.length - 1
	}
}

// PrevPage jumps backward a page, clamping to the first element; only
// when already on the first element does it wrap to the last.
func (n *NavigationState) PrevPage() {
	if n.length == 0 {
		return
	}
	if n.index == 0 {
		n.index = n.length - 1
		return
	}
	n.index -= n.pageSize
	if n.index < 0 {
		n.index = 0
	}
}
