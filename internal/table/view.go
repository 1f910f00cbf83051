package table

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ViewState is the transient search/filter/sort/page configuration of one table.
type ViewState struct {
	SearchTerm    string              `json:"searchTerm"`
	CurrentPage   int                 `json:"currentPage"`
	SortKey       string              `json:"sortKey,omitempty"`
	SortDirection string              `json:"sortDirection"`
	Filters       map[string][]string `json:"filters"`
}

// NewViewState returns the default state a table starts with.
func NewViewState() ViewState {
	return ViewState{
		CurrentPage:   1,
		SortDirection: SortAsc,
		Filters:       map[string][]string{},
	}
}

// SetSearchTerm replaces the search term and returns to the first page.
func (s *ViewState) SetSearchTerm(term string) {
	s.SearchTerm = term
	s.CurrentPage = 1
}

// ToggleFilter adds value to the filterType set when absent, removes it otherwise.
func (s *ViewState) ToggleFilter(value, filterType string) {
	if s.Filters == nil {
		s.Filters = map[string][]string{}
	}
	selected := s.Filters[filterType]
	for i, existing := range selected {
		if existing == value {
			s.Filters[filterType] = append(selected[:i:i], selected[i+1:]...)
			s.CurrentPage = 1
			return
		}
	}
	s.Filters[filterType] = append(selected, value)
	s.CurrentPage = 1
}

// HandleSort flips the direction when key is already active, otherwise sorts ascending by key.
func (s *ViewState) HandleSort(key string) {
	if s.SortKey == key {
		if s.SortDirection == SortAsc {
			s.SortDirection = SortDesc
		} else {
			s.SortDirection = SortAsc
		}
	} else {
		s.SortKey = key
		s.SortDirection = SortAsc
	}
	s.CurrentPage = 1
}

// ClearFilters empties every facet selection and the search term.
func (s *ViewState) ClearFilters() {
	for filterType := range s.Filters {
		s.Filters[filterType] = []string{}
	}
	s.SearchTerm = ""
	s.CurrentPage = 1
}

// SetCurrentPage sets the page without bounds checks.
func (s *ViewState) SetCurrentPage(n int) {
	s.CurrentPage = n
}

// Selected reports whether value is selected for filterType.
func (s ViewState) Selected(filterType, value string) bool {
	for _, existing := range s.Filters[filterType] {
		if existing == value {
			return true
		}
	}
	return false
}
