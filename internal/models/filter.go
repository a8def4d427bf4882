package models

// FilterState is the transient listing filter. The zero value is not
// meaningful; start from NewFilterState.
type FilterState struct {
	Category Category `json:"category"`
	Query    string   `json:"query"`
	Tag      string   `json:"tag,omitempty"` // empty = no tag selected
}

// NewFilterState returns the unfiltered state.
func NewFilterState() FilterState {
	return FilterState{Category: CategoryAll}
}

// WithCategory switches category. A category switch is a full reset: the
// query and the selected tag are cleared.
func (f FilterState) WithCategory(c Category) FilterState {
	return FilterState{Category: c}
}

// WithQuery replaces the free-text query and keeps everything else.
func (f FilterState) WithQuery(q string) FilterState {
	f.Query = q
	return f
}

// ToggleTag selects tag, or clears the selection if tag is already selected.
func (f FilterState) ToggleTag(tag string) FilterState {
	if f.Tag == tag {
		f.Tag = ""
		return f
	}
	f.Tag = tag
	return f
}

// Reset returns the unfiltered state.
func (f FilterState) Reset() FilterState {
	return NewFilterState()
}

// IsAll reports whether the category selector admits every category.
func (f FilterState) IsAll() bool {
	return f.Category == CategoryAll || f.Category == ""
}
