package activity

import (
	"errors"
	"sort"
	"sync"

	"github.com/neighborfit/neighborfit/internal/geo"
)

// Store errors.
var (
	// ErrNotFound is returned when no activity matches the given id.
	ErrNotFound = errors.New("activity not found")

	// ErrHostedActivity is returned when the viewer tries to join an
	// activity they host.
	ErrHostedActivity = errors.New("cannot join a hosted activity")

	// ErrActivityFull is returned on join when capacity enforcement is
	// enabled and the activity is at capacity.
	ErrActivityFull = errors.New("activity is at capacity")
)

// TabCounts holds per-tab activity counts for the tab bar.
type TabCounts struct {
	All     int `json:"all"`
	Joined  int `json:"joined"`
	Hosting int `json:"hosting"`
}

// Store owns the session's activity records. One store per session scope;
// construct isolated instances in tests rather than sharing globals.
//
// The store preserves seed order, tracks the seeded participant baseline
// per activity so leave operations never decrement below it, and caches
// the viewer's position so distances are recomputed on every change.
type Store struct {
	mu sync.RWMutex

	order    []string
	records  map[string]*Activity
	baseline map[string]int

	userPos *geo.Point

	capacityEnforced bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCapacityEnforcement makes joins fail with ErrActivityFull when the
// activity is at capacity. Off by default: capacity is advisory.
func WithCapacityEnforcement(enabled bool) StoreOption {
	return func(s *Store) {
		s.capacityEnforced = enabled
	}
}

// NewStore creates a store seeded with the given records. The baseline
// participant count excludes the viewer for records seeded as joined, so
// a later leave restores the seeded value exactly.
func NewStore(records []*Activity, opts ...StoreOption) *Store {
	s := &Store{
		records:  make(map[string]*Activity, len(records)),
		baseline: make(map[string]int, len(records)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, rec := range records {
		c := rec.Clone()
		s.order = append(s.order, c.ID)
		s.records[c.ID] = c

		base := c.Participants
		if c.IsJoined {
			base--
		}
		if base < 0 {
			base = 0
		}
		s.baseline[c.ID] = base
	}
	return s
}

// EnrichWithDistance returns a copy of records with DistanceKm computed
// relative to pos. A nil position returns the input unchanged: distances
// stay unset rather than defaulting to a bogus origin.
func EnrichWithDistance(records []*Activity, pos *geo.Point) []*Activity {
	if pos == nil {
		return records
	}
	out := make([]*Activity, len(records))
	for i, rec := range records {
		c := rec.Clone()
		d := geo.DistanceKm(*pos, c.Coordinates)
		c.DistanceKm = &d
		out[i] = c
	}
	return out
}

// SetUserPosition records the viewer's position and recomputes every
// activity's distance. Must be called before consumers read the list so
// stale distances are never rendered.
func (s *Store) SetUserPosition(pos geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pos
	s.userPos = &p
	for _, rec := range s.records {
		d := geo.DistanceKm(p, rec.Coordinates)
		rec.DistanceKm = &d
	}
}

// UserPosition returns the viewer's position, or nil if none is known yet.
func (s *Store) UserPosition() *geo.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.userPos == nil {
		return nil
	}
	p := *s.userPos
	return &p
}

// Activities returns snapshots of all records in seed order.
func (s *Store) Activities() []*Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Activity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out
}

// Get returns a snapshot of one activity.
func (s *Store) Get(id string) (*Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

// ToggleParticipation flips the viewer's joined state on the activity and
// adjusts the participant count by exactly one in the matching direction.
// Leaving never decrements below the seeded baseline.
//
// Returns the updated snapshot and whether the viewer is now joined.
func (s *Store) ToggleParticipation(id string) (*Activity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if rec.IsHosted {
		return nil, false, ErrHostedActivity
	}

	if rec.IsJoined {
		rec.IsJoined = false
		if rec.Participants > s.baseline[id] {
			rec.Participants--
		}
		return rec.Clone(), false, nil
	}

	if s.capacityEnforced && rec.Capacity > 0 && rec.Participants >= rec.Capacity {
		return nil, false, ErrActivityFull
	}

	rec.IsJoined = true
	rec.Participants++
	return rec.Clone(), true, nil
}

// LeaveIfJoined removes the viewer from the activity only when they are
// currently joined. This is the rollback for an optimistic paid join: a
// failure callback that arrives after the viewer already left must not
// toggle them back in.
func (s *Store) LeaveIfJoined(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if !rec.IsJoined {
		return nil
	}

	rec.IsJoined = false
	if rec.Participants > s.baseline[id] {
		rec.Participants--
	}
	return nil
}

// TabCounts returns the per-tab counts across all records.
func (s *Store) TabCounts() TabCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := TabCounts{All: len(s.order)}
	for _, rec := range s.records {
		if rec.IsJoined {
			counts.Joined++
		}
		if rec.IsHosted {
			counts.Hosting++
		}
	}
	return counts
}

// SortByDistance orders records by ascending distance from the viewer.
// Records without a computed distance sort after those with one; the sort
// is stable so seed order breaks ties.
func SortByDistance(records []*Activity) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].DistanceKm, records[j].DistanceKm
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
}
