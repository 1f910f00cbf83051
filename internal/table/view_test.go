package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleFilterAddsAndRemoves(t *testing.T) {
	state := NewViewState()
	state.SetCurrentPage(4)

	state.ToggleFilter("ACTIVE", "status")
	assert.Equal(t, []string{"ACTIVE"}, state.Filters["status"])
	assert.Equal(t, 1, state.CurrentPage)

	state.ToggleFilter("INACTIVE", "status")
	state.SetCurrentPage(2)
	state.ToggleFilter("ACTIVE", "status")
	assert.Equal(t, []string{"INACTIVE"}, state.Filters["status"])
	assert.Equal(t, 1, state.CurrentPage)
}

func TestToggleFilterOnZeroValue(t *testing.T) {
	var state ViewState
	state.ToggleFilter("Beirut", "city")
	assert.True(t, state.Selected("city", "Beirut"))
}

func TestHandleSort(t *testing.T) {
	state := NewViewState()

	state.HandleSort("name")
	assert.Equal(t, "name", state.SortKey)
	assert.Equal(t, SortAsc, state.SortDirection)

	state.SetCurrentPage(3)
	state.HandleSort("name")
	assert.Equal(t, SortDesc, state.SortDirection)
	assert.Equal(t, 1, state.CurrentPage)

	state.HandleSort("name")
	assert.Equal(t, SortAsc, state.SortDirection)

	state.HandleSort("name")
	state.HandleSort("email")
	assert.Equal(t, "email", state.SortKey)
	assert.Equal(t, SortAsc, state.SortDirection)
}

func TestClearFilters(t *testing.T) {
	state := NewViewState()
	state.ToggleFilter("ACTIVE", "status")
	state.ToggleFilter("Beirut", "city")
	state.SetSearchTerm("rami")
	state.HandleSort("name")
	state.SetCurrentPage(5)

	state.ClearFilters()
	assert.Empty(t, state.SearchTerm)
	assert.Empty(t, state.Filters["status"])
	assert.Empty(t, state.Filters["city"])
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, "name", state.SortKey)
}

func TestSetCurrentPageDoesNotClamp(t *testing.T) {
	state := NewViewState()
	state.SetCurrentPage(99)
	assert.Equal(t, 99, state.CurrentPage)
}
