package tui

// SearchMsg represents messages that the search component handles
type SearchMsg interface {
	isSearchMsg()
}

// Search message implementations
type StartSearchMsg struct{}

func (StartSearchMsg) isSearchMsg() {}

type UpdateSearchInputMsg struct {
	Input string
}

func (UpdateSearchInputMsg) isSearchMsg() {}

type ExecuteSearchMsg struct{}

func (ExecuteSearchMsg) isSearchMsg() {}

type CancelSearchMsg struct{}

func (CancelSearchMsg) isSearchMsg() {}

type ClearSearchMsg struct{}

func (ClearSearchMsg) isSearchMsg() {}

// SearchModel holds the live filter input. The list filters as the user
// types; cancelling restores the term that was active before.
type SearchModel struct {
	Active   bool   // true while the input line is open
	Input    string // text typed so far
	previous string // term to restore on cancel
}

// NewSearchModel creates a new search model with default values
func NewSearchModel() SearchModel {
	return SearchModel{}
}

// Update applies a search message
func (s *SearchModel) Update(msg SearchMsg) {
	switch m := msg.(type) {
	case StartSearchMsg:
		s.Active = true
		s.previous = s.Input
	case UpdateSearchInputMsg:
		s.Input = m.Input
	case ExecuteSearchMsg:
		s.Active = false
		s.previous = s.Input
	case CancelSearchMsg:
		s.Active = false
		s.Input = s.previous
	case ClearSearchMsg:
		s.Active = false
		s.Input = ""
		s.previous = ""
	}
}

// IsActive returns whether the input line is open
func (s *SearchModel) IsActive() bool {
	return s.Active
}

// Term returns the search term currently applied to the list
func (s *SearchModel) Term() string {
	return s.Input
}
