package activity

import "strings"

// Tab selects which slice of the viewer's activities is shown.
type Tab string

// Tabs.
const (
	TabAll     Tab = "all"
	TabJoined  Tab = "joined"
	TabHosting Tab = "hosting"
)

// ParseTab maps a raw tab value to a Tab, defaulting to TabAll.
func ParseTab(raw string) Tab {
	switch Tab(raw) {
	case TabJoined:
		return TabJoined
	case TabHosting:
		return TabHosting
	default:
		return TabAll
	}
}

// FilterState is the complete search/filter/tab input. The visible set is
// a pure function of (records, FilterState).
type FilterState struct {
	Query  string
	Facets []string
	Tab    Tab
}

// Visible returns the records matching the filter state, preserving input
// order. The three predicates are conjoined: tab AND query AND facets.
func Visible(records []*Activity, fs FilterState) []*Activity {
	out := make([]*Activity, 0, len(records))
	for _, rec := range records {
		if matchesTab(rec, fs.Tab) && matchesQuery(rec, fs.Query) && matchesFacets(rec, fs.Facets) {
			out = append(out, rec)
		}
	}
	return out
}

// matchesTab applies the active-tab predicate.
func matchesTab(a *Activity, tab Tab) bool {
	switch tab {
	case TabJoined:
		return a.IsJoined
	case TabHosting:
		return a.IsHosted
	default:
		return true
	}
}

// matchesQuery matches the query case-insensitively as a substring of the
// title, type, location, or organizer name. An empty query matches all.
func matchesQuery(a *Activity, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Type), q) ||
		strings.Contains(strings.ToLower(a.Location), q) ||
		strings.Contains(strings.ToLower(a.Organizer.Name), q)
}

// matchesFacets applies the facet predicate: an empty facet set matches
// everything; otherwise the activity matches if ANY selected facet
// substring-matches any of its tags, difficulty, category, or type.
//
// Facets are OR-combined on purpose: stacking filter chips widens results.
// Do not change this to AND.
func matchesFacets(a *Activity, facets []string) bool {
	if len(facets) == 0 {
		return true
	}
	for _, facet := range facets {
		f := strings.ToLower(facet)
		if strings.Contains(strings.ToLower(string(a.Difficulty)), f) ||
			strings.Contains(strings.ToLower(string(a.Category)), f) ||
			strings.Contains(strings.ToLower(a.Type), f) {
			return true
		}
		for _, tag := range a.Tags {
			if strings.Contains(strings.ToLower(tag), f) {
				return true
			}
		}
	}
	return false
}

// EmptyState identifies which empty-state message and recovery action the
// client should render when the visible set is empty.
type EmptyState string

// Empty-state kinds. An empty visible set is a defined UI state, never an
// error.
const (
	EmptyStateNone      EmptyState = ""
	EmptyStateNoResults EmptyState = "no_results"
	EmptyStateNoJoined  EmptyState = "no_joined"
	EmptyStateNoHosted  EmptyState = "no_hosted"
)

// EmptyStateFor returns the empty-state kind for a visible set under the
// given tab, or EmptyStateNone when the set is not empty.
func EmptyStateFor(visible []*Activity, tab Tab) EmptyState {
	if len(visible) > 0 {
		return EmptyStateNone
	}
	switch tab {
	case TabJoined:
		return EmptyStateNoJoined
	case TabHosting:
		return EmptyStateNoHosted
	default:
		return EmptyStateNoResults
	}
}
