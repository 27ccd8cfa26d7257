// Package filter turns a fetched todo list and a client-held filter
// specification into the list the UI renders. Everything here is pure;
// the input slice is never modified.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adanyl0v/todoboard/internal/models"
)

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

type State struct {
	Status      string `json:"status"`
	SearchQuery string `json:"searchQuery"`
	SortOrder   string `json:"sortOrder"`
}

func DefaultState() State {
	return State{
		Status:      StatusAll,
		SearchQuery: "",
		SortOrder:   SortNewest,
	}
}

// IsDefault reports whether no filtering or non-default sorting is active.
func (s State) IsDefault() bool {
	return s.Status == StatusAll &&
		strings.TrimSpace(s.SearchQuery) == "" &&
		s.SortOrder == SortNewest
}

// Apply runs the status filter, then the search filter,
// then the sort, and returns a fresh slice.
func Apply(todos []models.Todo, state State) []models.Todo {
	filtered := make([]models.Todo, 0, len(todos))

	for _, todo := range todos {
		switch state.Status {
		case StatusActive:
			if todo.Completed {
				continue
			}
		case StatusCompleted:
			if !todo.Completed {
				continue
			}
		}
		filtered = append(filtered, todo)
	}

	query := strings.ToLower(strings.TrimSpace(state.SearchQuery))
	if query != "" {
		matched := filtered[:0]
		for _, todo := range filtered {
			if strings.Contains(strings.ToLower(todo.Title), query) {
				matched = append(matched, todo)
			}
		}
		filtered = matched
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if state.SortOrder == SortOldest {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return filtered
}

// Summary renders a human-readable description of the active filters,
// e.g. `active matching "milk"`, or "All todos" when none are active.
func Summary(state State) string {
	parts := make([]string, 0, 2)

	if state.Status != StatusAll && state.Status != "" {
		parts = append(parts, state.Status)
	}
	if strings.TrimSpace(state.SearchQuery) != "" {
		parts = append(parts, fmt.Sprintf("%q", state.SearchQuery))
	}

	if len(parts) == 0 {
		return "All todos"
	}
	return strings.Join(parts, " matching ")
}

type Counts struct {
	All       int
	Active    int
	Completed int
	Filtered  int
}

// Count derives the header numbers from the full and filtered lists.
// Recomputed on every render rather than stored.
func Count(todos, filtered []models.Todo) Counts {
	counts := Counts{
		All:      len(todos),
		Filtered: len(filtered),
	}
	for _, todo := range todos {
		if todo.Completed {
			counts.Completed++
		} else {
			counts.Active++
		}
	}
	return counts
}
