package table

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery reads a view state from query parameters:
//
//	search=<term>&page=<n>&sort=<key>&dir=asc|desc&filter[<type>]=<value>
//
// filter[...] may repeat. Sort keys that are not sortable columns are ignored.
func (d Definition) ParseQuery(values url.Values) ViewState {
	state := NewViewState()
	state.SearchTerm = values.Get("search")

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		state.CurrentPage = page
	}

	if key := strings.TrimSpace(values.Get("sort")); key != "" && d.Sortable(key) {
		state.SortKey = key
		if strings.EqualFold(values.Get("dir"), SortDesc) {
			state.SortDirection = SortDesc
		}
	}

	for key, selected := range values {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		filterType := key[len("filter[") : len(key)-1]
		if filterType == "" {
			continue
		}
		for _, value := range selected {
			value = strings.TrimSpace(value)
			if value != "" && !state.Selected(filterType, value) {
				state.Filters[filterType] = append(state.Filters[filterType], value)
			}
		}
	}

	return state
}
