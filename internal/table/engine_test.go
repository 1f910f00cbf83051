package table

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerDef = Definition{
	Columns: []Column{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "location.city", Label: "City", Sortable: true},
		{Key: "amount", Label: "Amount", Sortable: true},
	},
	Facets: []Facet{
		{Type: "status", Label: "Status", Field: "status"},
		{Type: "city", Label: "City", Field: "location.city"},
		{Type: "bundle", Label: "Bundle", Field: "bundleNames", Membership: true},
	},
}

func sampleCustomers() []Record {
	return []Record{
		{"id": 1, "name": "Rami Haddad", "status": "ACTIVE", "location": map[string]interface{}{"city": "Beirut", "street": "Hamra"}, "bundleNames": []string{"Fiber 100"}},
		{"id": 2, "name": "Lina Khoury", "status": "INACTIVE", "location": map[string]interface{}{"city": "Tripoli"}, "bundleNames": []string{"DSL 8", "Fiber 100"}},
		{"id": 3, "name": "Omar Saleh", "status": "ACTIVE", "location": map[string]interface{}{"city": "Tripoli"}, "bundleNames": []string{}},
		{"id": 4, "name": "Maya Aoun", "status": "ACTIVE", "location": nil, "bundleNames": []string{"DSL 8"}},
	}
}

func ids(rows []Record) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["id"].(int))
	}
	return out
}

func TestComputeStatusFilterScenario(t *testing.T) {
	engine := NewEngine("en")
	records := []Record{
		{"id": 1, "status": "ACTIVE", "city": "Beirut"},
		{"id": 2, "status": "INACTIVE", "city": "Tripoli"},
	}
	state := NewViewState()
	state.ToggleFilter("ACTIVE", "status")

	result := engine.Compute(Definition{}, records, state, 10)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 1, result.Rows[0]["id"])
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, result.TotalCount)
}

func TestComputeThirdPageScenario(t *testing.T) {
	engine := NewEngine("en")
	records := make([]Record, 25)
	for i := range records {
		records[i] = Record{"id": i + 1}
	}
	state := NewViewState()
	state.SetCurrentPage(3)

	result := engine.Compute(Definition{}, records, state, 10)
	assert.Len(t, result.Rows, 5)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, ids(result.Rows))
}

func TestSortNullsStayLast(t *testing.T) {
	engine := NewEngine("en")
	def := Definition{Columns: []Column{{Key: "amount", Sortable: true}}}
	records := []Record{{"amount": 30}, {"amount": nil}, {"amount": 10}}

	amounts := func(rows []Record) []interface{} {
		out := make([]interface{}, 0, len(rows))
		for _, r := range rows {
			out = append(out, r["amount"])
		}
		return out
	}

	state := NewViewState()
	state.HandleSort("amount")
	asc := engine.Compute(def, records, state, 10)
	assert.Equal(t, []interface{}{10, 30, nil}, amounts(asc.Rows))

	state.HandleSort("amount")
	require.Equal(t, SortDesc, state.SortDirection)
	desc := engine.Compute(def, records, state, 10)
	assert.Equal(t, []interface{}{30, 10, nil}, amounts(desc.Rows))

	assert.Equal(t, 30, records[0]["amount"], "source order must be untouched")
}

func TestSortNilPointerAndMissingAreNull(t *testing.T) {
	engine := NewEngine("en")
	var missing *float64
	five := 5.0
	records := []Record{{"id": 1, "amount": missing}, {"id": 2}, {"id": 3, "amount": &five}}

	engine.Sort(records, "amount", SortDesc)
	assert.Equal(t, 3, records[0]["id"])
}

func TestSortIsStableAndLocaleAware(t *testing.T) {
	engine := NewEngine("en")
	records := []Record{
		{"id": 1, "name": "beta"},
		{"id": 2, "name": "Alpha"},
		{"id": 3, "name": "beta"},
		{"id": 4, "name": "alpha"},
	}

	engine.Sort(records, "name", SortAsc)
	once := ids(records)
	engine.Sort(records, "name", SortAsc)
	assert.Equal(t, once, ids(records))

	assert.Equal(t, "beta", records[2]["name"])
	assert.Equal(t, 1, records[2]["id"])
	assert.Equal(t, 3, records[3]["id"])
	assert.True(t, strings.EqualFold("alpha", records[0]["name"].(string)))
}

func TestSortByNestedKey(t *testing.T) {
	engine := NewEngine("en")
	records := sampleCustomers()
	engine.Sort(records, "location.city", SortAsc)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(records))

	engine.Sort(records, "location.city", SortDesc)
	assert.Equal(t, []int{2, 3, 1, 4}, ids(records))
}

func TestSearchMatchesAnyFieldCaseInsensitive(t *testing.T) {
	engine := NewEngine("en")
	records := sampleCustomers()

	state := NewViewState()
	state.SetSearchTerm("HAMRA")
	assert.Equal(t, []int{1}, ids(engine.Filter(customerDef, records, state)))

	state.SetSearchTerm("dsl")
	assert.Equal(t, []int{2, 4}, ids(engine.Filter(customerDef, records, state)))

	state.SetSearchTerm("")
	assert.Len(t, engine.Filter(customerDef, records, state), len(records))
}

func TestSearchResultIsSubsetContainingTerm(t *testing.T) {
	engine := NewEngine("en")
	records := sampleCustomers()
	for _, term := range []string{"a", "tri", "100", "xyz", "Active"} {
		state := NewViewState()
		state.SetSearchTerm(term)
		for _, row := range engine.Filter(customerDef, records, state) {
			found := false
			for _, v := range row {
				for _, s := range searchable(v, nil) {
					if strings.Contains(strings.ToLower(s), strings.ToLower(term)) {
						found = true
					}
				}
			}
			assert.True(t, found, "row %v does not contain %q", row["id"], term)
		}
	}
}

func TestFacetsCombineWithAnd(t *testing.T) {
	engine := NewEngine("en")
	records := sampleCustomers()

	state := NewViewState()
	state.ToggleFilter("Tripoli", "city")
	assert.Equal(t, []int{2, 3}, ids(engine.Filter(customerDef, records, state)))

	state.ToggleFilter("ACTIVE", "status")
	assert.Equal(t, []int{3}, ids(engine.Filter(customerDef, records, state)))

	state.ToggleFilter("Tripoli", "city")
	state.ToggleFilter("Fiber 100", "bundle")
	assert.Equal(t, []int{1}, ids(engine.Filter(customerDef, records, state)))

	state.ToggleFilter("DSL 8", "bundle")
	assert.Equal(t, []int{1, 4}, ids(engine.Filter(customerDef, records, state)))
}

func TestEmptyFacetSetImposesNoConstraint(t *testing.T) {
	engine := NewEngine("en")
	state := NewViewState()
	state.Filters["status"] = []string{}
	assert.Len(t, engine.Filter(customerDef, sampleCustomers(), state), 4)
}

func TestFilterInvariantUnderReordering(t *testing.T) {
	engine := NewEngine("en")
	records := sampleCustomers()
	state := NewViewState()
	state.ToggleFilter("ACTIVE", "status")
	state.SetSearchTerm("a")

	want := map[int]bool{}
	for _, id := range ids(engine.Filter(customerDef, records, state)) {
		want[id] = true
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := map[int]bool{}
		for _, id := range ids(engine.Filter(customerDef, shuffled, state)) {
			got[id] = true
		}
		assert.Equal(t, want, got)
	}
}

func TestPaginationCoversEveryRowOnce(t *testing.T) {
	engine := NewEngine("en")
	records := make([]Record, 23)
	for i := range records {
		records[i] = Record{"id": i + 1, "name": fmt.Sprintf("customer %02d", 23-i)}
	}

	for _, size := range []int{1, 3, 5, 10, 23, 50} {
		state := NewViewState()
		state.HandleSort("name")
		sorted := engine.Compute(customerDef, records, state, len(records)).Rows

		var all []Record
		first := engine.Compute(customerDef, records, state, size)
		for page := 1; page <= first.TotalPages; page++ {
			state.SetCurrentPage(page)
			result := engine.Compute(customerDef, records, state, size)
			assert.LessOrEqual(t, len(result.Rows), size)
			all = append(all, result.Rows...)
		}
		assert.Equal(t, ids(sorted), ids(all), "page size %d", size)
	}
}

func TestPageBeyondTotalIsEmpty(t *testing.T) {
	engine := NewEngine("en")
	state := NewViewState()
	state.SetCurrentPage(9)
	result := engine.Compute(customerDef, sampleCustomers(), state, 2)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 2, result.TotalPages)
}

func TestPageBelowOneIsEmpty(t *testing.T) {
	engine := NewEngine("en")
	for _, page := range []int{0, -3} {
		state := NewViewState()
		state.SetCurrentPage(page)
		result := engine.Compute(customerDef, sampleCustomers(), state, 2)
		assert.Empty(t, result.Rows, "page %d", page)
		assert.Equal(t, 2, result.TotalPages)
		assert.Equal(t, len(sampleCustomers()), result.TotalCount)
	}
}

func TestEmptyCollection(t *testing.T) {
	result := NewEngine("").Compute(customerDef, nil, NewViewState(), 10)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.TotalPages)
}

func TestResolve(t *testing.T) {
	record := Record{"location": map[string]interface{}{"city": "Beirut"}, "a.b": "literal"}
	assert.Equal(t, "Beirut", Resolve(record, "location.city"))
	assert.Nil(t, Resolve(record, "location.floor"))
	assert.Nil(t, Resolve(record, "missing.city"))
	assert.Equal(t, "literal", Resolve(record, "a.b"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", Display(nil))
	assert.Equal(t, "Fiber 100, TV Plus", Display([]string{"Fiber 100", "TV Plus"}))
	assert.Equal(t, "49.5", Display(49.5))
	assert.Equal(t, "ACTIVE", Display("ACTIVE"))
}
