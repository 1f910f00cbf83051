package table

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Facet describes a filter dimension. Field is the dotted accessor the selected
// values are matched against; Membership tests list-valued fields by element.
type Facet struct {
	Type       string `json:"type"`
	Label      string `json:"label"`
	Field      string `json:"field"`
	Membership bool   `json:"membership,omitempty"`
}

// Definition is the static shape of one table: its columns and facets.
type Definition struct {
	Columns []Column
	Facets  []Facet
}

// Facet returns the facet for filterType. Undeclared types filter on the field of the same name.
func (d Definition) Facet(filterType string) Facet {
	for _, f := range d.Facets {
		if f.Type == filterType {
			return f
		}
	}
	return Facet{Type: filterType, Field: filterType}
}

// Sortable reports whether key is a sortable column.
func (d Definition) Sortable(key string) bool {
	for _, c := range d.Columns {
		if c.Key == key {
			return c.Sortable
		}
	}
	return false
}

// Result is the page of records to render.
type Result struct {
	Rows       []Record `json:"rows"`
	TotalPages int      `json:"totalPages"`
	TotalCount int      `json:"totalCount"`
}

// Engine computes visible rows with locale-aware string ordering.
type Engine struct {
	tag language.Tag
}

// NewEngine builds an engine collating strings for the given BCP 47 locale.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Engine{tag: tag}
}

// Compute filters by search term, then facets, sorts, and slices out the current page.
// The page is not corrected: a page below 1 or past the last one yields no rows.
// The source slice is never modified.
func (e *Engine) Compute(def Definition, records []Record, state ViewState, itemsPerPage int) Result {
	if itemsPerPage <= 0 {
		itemsPerPage = 10
	}

	filtered := e.Filter(def, records, state)
	e.Sort(filtered, state.SortKey, state.SortDirection)

	total := len(filtered)
	page := state.CurrentPage

	start := (page - 1) * itemsPerPage
	end := page * itemsPerPage
	if page < 1 || start > total {
		start, end = total, total
	}
	if end > total {
		end = total
	}

	rows := make([]Record, end-start)
	copy(rows, filtered[start:end])

	return Result{
		Rows:       rows,
		TotalPages: int(math.Ceil(float64(total) / float64(itemsPerPage))),
		TotalCount: total,
	}
}

// Filter applies the search term and every active facet, preserving input order.
func (e *Engine) Filter(def Definition, records []Record, state ViewState) []Record {
	term := strings.ToLower(state.SearchTerm)
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if !matchesSearch(record, term) {
			continue
		}
		if !matchesFacets(def, record, state.Filters) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Sort orders records in place by key. Nulls go last in both directions and ties keep input order.
func (e *Engine) Sort(records []Record, key, direction string) {
	if key == "" {
		return
	}
	col := collate.New(e.tag)
	desc := direction == SortDesc
	sort.SliceStable(records, func(i, j int) bool {
		return compareValues(col, Resolve(records[i], key), Resolve(records[j], key), desc) < 0
	})
}

func matchesSearch(record Record, term string) bool {
	if term == "" {
		return true
	}
	for _, value := range record {
		for _, s := range searchable(value, nil) {
			if strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	}
	return false
}

func matchesFacets(def Definition, record Record, filters map[string][]string) bool {
	for filterType, selected := range filters {
		if len(selected) == 0 {
			continue
		}
		facet := def.Facet(filterType)
		value := Resolve(record, facet.Field)

		var candidates []string
		if facet.Membership {
			candidates = members(value)
		} else if !isNull(value) {
			candidates = []string{scalarString(value)}
		}
		if !anyIn(candidates, selected) {
			return false
		}
	}
	return true
}

func anyIn(candidates, selected []string) bool {
	for _, c := range candidates {
		for _, s := range selected {
			if c == s {
				return true
			}
		}
	}
	return false
}

func compareValues(col *collate.Collator, a, b interface{}, desc bool) int {
	aNull, bNull := isNull(a), isNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}

	var result int
	af, aNum := toNumber(a)
	bf, bNum := toNumber(b)
	if aNum && bNum {
		switch {
		case af < bf:
			result = -1
		case af > bf:
			result = 1
		}
	} else {
		result = col.CompareString(scalarString(a), scalarString(b))
	}

	if desc {
		return -result
	}
	return result
}
