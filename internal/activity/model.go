// Package activity provides the activity model, the seeded in-memory store,
// and the search/filter engine behind neighborhood activity discovery.
package activity

import "github.com/neighborfit/neighborfit/internal/geo"

// Difficulty is the three-way difficulty rating shown on activity cards
// and encoded into marker colors.
type Difficulty string

// Difficulty levels.
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Category classifies where an activity takes place.
type Category string

// Activity categories.
const (
	CategoryOutdoor Category = "outdoor"
	CategoryIndoor  Category = "indoor"
	CategoryWater   Category = "water"
	CategoryGroup   Category = "group"
)

// Organizer is the person hosting an activity.
type Organizer struct {
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"` // 0-5
	Verified bool    `json:"verified"`
}

// Activity is a single neighborhood fitness activity. Identity fields are
// immutable after seeding; participation fields (Participants, IsJoined)
// and DistanceKm change over the session.
type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"` // free-text category, e.g. "Yoga"
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Coordinates geo.Point `json:"coordinates"`

	// DistanceKm is derived from the viewer's position. Nil until a
	// position is known; always a cache of DistanceKm(coords, position),
	// never a source of truth.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	Time string `json:"time"` // display string, e.g. "6:00 AM - 7:30 AM"
	Date string `json:"date"` // display string, e.g. "Tomorrow"

	Participants int `json:"participants"`
	Capacity     int `json:"capacity"`

	Difficulty Difficulty `json:"difficulty"`
	Category   Category   `json:"category"`
	Tags       []string   `json:"tags"`

	// Price in rupees; 0 means free.
	Price int64 `json:"price"`

	Organizer   Organizer `json:"organizer"`
	Description string    `json:"description"`
	Equipment   []string  `json:"equipment"`
	AgeGroup    string    `json:"age_group"`

	DurationMinutes int  `json:"duration_minutes"`
	IsRecurring     bool `json:"is_recurring"`

	// Viewer relationship. A viewer never joins an activity they host;
	// the store rejects such toggles.
	IsJoined bool `json:"is_joined"`
	IsHosted bool `json:"is_hosted"`
}

// Paid reports whether joining this activity requires a payment.
func (a *Activity) Paid() bool {
	return a.Price > 0
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// store mutations.
func (a *Activity) Clone() *Activity {
	c := *a
	if a.DistanceKm != nil {
		d := *a.DistanceKm
		c.DistanceKm = &d
	}
	c.Tags = append([]string(nil), a.Tags...)
	c.Equipment = append([]string(nil), a.Equipment...)
	return &c
}
