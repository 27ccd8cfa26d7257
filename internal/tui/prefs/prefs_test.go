package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/todoboard/internal/filter"
)

func TestLoadFiltersMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")

	state, err := LoadFilters(path)
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultState(), state)
}

func TestSaveAndLoadFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filters.json")

	saved := filter.State{
		Status:      filter.StatusActive,
		SearchQuery: "milk",
		SortOrder:   filter.SortOldest,
	}
	require.NoError(t, SaveFilters(path, saved))

	loaded, err := LoadFilters(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadFiltersSanitizesUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"status":"archived","searchQuery":"milk","sortOrder":"priority"}`), 0o644))

	state, err := LoadFilters(path)
	require.NoError(t, err)
	assert.Equal(t, filter.StatusAll, state.Status)
	assert.Equal(t, filter.SortNewest, state.SortOrder)
	assert.Equal(t, "milk", state.SearchQuery)
}

func TestLoadFiltersCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	state, err := LoadFilters(path)
	assert.Error(t, err)
	assert.Equal(t, filter.DefaultState(), state)
}
