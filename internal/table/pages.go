package table

// DefaultPageButtons is the widest page-number window rendered under a table.
const DefaultPageButtons = 5

// PageWindow returns the page numbers to render: every page when they fit in
// buttons, otherwise a window centred on current and clamped to [1, total].
func PageWindow(current, total, buttons int) []int {
	if buttons <= 0 {
		buttons = DefaultPageButtons
	}
	if total <= 0 {
		return []int{}
	}
	if total <= buttons {
		return pageRange(1, total)
	}

	start := current - buttons/2
	if start < 1 {
		start = 1
	}
	end := start + buttons - 1
	if end > total {
		end = total
		start = total - buttons + 1
	}
	return pageRange(start, end)
}

// FilterConfig lists the selectable options of one facet.
type FilterConfig struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// FilterOptions derives each facet's distinct non-empty values across the full
// collection, in first-seen order.
func FilterOptions(def Definition, records []Record) []FilterConfig {
	configs := make([]FilterConfig, 0, len(def.Facets))
	for _, facet := range def.Facets {
		seen := map[string]struct{}{}
		options := []string{}
		for _, record := range records {
			for _, value := range members(Resolve(record, facet.Field)) {
				if value == "" {
					continue
				}
				if _, ok := seen[value]; ok {
					continue
				}
				seen[value] = struct{}{}
				options = append(options, value)
			}
		}
		configs = append(configs, FilterConfig{Type: facet.Type, Label: facet.Label, Options: options})
	}
	return configs
}

func pageRange(from, to int) []int {
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}
