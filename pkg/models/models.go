// Package models defines the domain types shared across pitchline-engine.
package models

import "time"

// LatLng is a geographic coordinate pair resolved by the geocoder.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client is a prospective home buyer with stated hard constraints and up to
// three recorded outreach messages.
type Client struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PreferredCities []string  `json:"preferred_cities"`
	MinRooms        int       `json:"min_rooms"`
	MinGarages      int       `json:"min_garages"`
	BasementNeeded  bool      `json:"basement_needed"`
	KidsUnder10     int       `json:"kids_under_10"`
	KidsUnder18     int       `json:"kids_under_18"`
	HomeType        string    `json:"home_type"`
	Ethnicity       string    `json:"ethnicity"`
	MaxBudget       float64   `json:"max_budget"`
	CreatedAt       time.Time `json:"created_at"`

	// Outreach slots in stage order. A later slot is never populated while
	// an earlier one is empty.
	FirstMessage          *OutreachMessage `json:"first_message,omitempty"`
	FollowUpMessage       *OutreachMessage `json:"follow_up_message,omitempty"`
	SecondFollowUpMessage *OutreachMessage `json:"second_follow_up_message,omitempty"`
}

// OutreachMessage is one sent email recorded against a client slot.
type OutreachMessage struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Property is a listed home. Immutable after ingestion. Location is nil when
// geocoding the address failed at load time.
type Property struct {
	ID        int64     `json:"id"`
	City      string    `json:"city"`
	Rooms     int       `json:"rooms"`
	Garages   int       `json:"garages"`
	Basement  bool      `json:"basement"`
	HomeType  string    `json:"home_type"`
	Address   string    `json:"address"`
	Cost      float64   `json:"cost"`
	Location  *LatLng   `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaceQuery is one parsed "category[:keyword]" suggestion from the place
// suggestion generator.
type PlaceQuery struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword,omitempty"`
}

// Tag renders the query back into its "category[:keyword]" form. Nearby
// places carry the tag of the query that produced them.
func (q PlaceQuery) Tag() string {
	if q.Keyword == "" {
		return q.Category
	}
	return q.Category + ":" + q.Keyword
}

// NearbyPlace is one point of interest found near a property. Rating is the
// search capability's rating, or RatingUnknown when the place has none.
type NearbyPlace struct {
	Name    string  `json:"name"`
	Tag     string  `json:"tag"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating,omitempty"`
}

// RatingUnknown marks a place the search capability returned without a rating.
const RatingUnknown = 0

// EmailDraft is a generated (or operator-edited) email awaiting review/send.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PitchContext is the full context assembled for the text-generation
// capability. Pure data; the composer fills it and never reorders matches.
type PitchContext struct {
	Client       Client
	BestMatch    Property
	NearbyPlaces []NearbyPlace
	SenderName   string

	// Prior message bodies, present only for follow-up stages, so later
	// messages can reference earlier ones without repeating them.
	FirstEmail    string
	FollowUpEmail string
}
