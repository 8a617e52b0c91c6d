package schema

import "fmt"

// Venue describes one configured market data source.
type Venue struct {
	ID   VenueID
	Name string
	// Weight is the venue's share in cross-venue aggregation. It does not
	// need to sum to one across venues, only to be non-negative.
	Weight float64
}

// Registry stores the fixed venue set for one instrument. It is built once
// at startup and never mutated afterwards.
type Registry struct {
	venues      []Venue
	venueByName map[string]VenueID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		venueByName: make(map[string]VenueID),
	}
}

// AddVenue registers a new venue and returns its ID. IDs are dense and
// start at one, matching the wire tag.
func (r *Registry) AddVenue(name string, weight float64) (VenueID, error) {
	if name == "" {
		return 0, fmt.Errorf("venue name is empty")
	}
	if weight < 0 {
		return 0, fmt.Errorf("venue weight is negative: %s", name)
	}
	if id, ok := r.venueByName[name]; ok {
		return id, fmt.Errorf("venue already exists: %s", name)
	}
	if len(r.venues) >= int(^VenueID(0)) {
		return 0, fmt.Errorf("venue id space exhausted")
	}
	id := VenueID(len(r.venues) + 1)
	r.venues = append(r.venues, Venue{ID: id, Name: name, Weight: weight})
	r.venueByName[name] = id
	return id, nil
}

// Venue returns the venue by ID.
func (r *Registry) Venue(id VenueID) (Venue, bool) {
	if id == 0 || int(id) > len(r.venues) {
		return Venue{}, false
	}
	return r.venues[id-1], true
}

// VenueIDByName resolves a venue name.
func (r *Registry) VenueIDByName(name string) (VenueID, bool) {
	id, ok := r.venueByName[name]
	return id, ok
}

// VenueCount returns the number of configured venues.
func (r *Registry) VenueCount() int {
	return len(r.venues)
}

// VenueAt returns the venue by zero-based index.
func (r *Registry) VenueAt(index int) (Venue, bool) {
	if index < 0 || index >= len(r.venues) {
		return Venue{}, false
	}
	return r.venues[index], true
}

// Weights returns a copy of the venue weights indexed by VenueID-1.
func (r *Registry) Weights() []float64 {
	weights := make([]float64, len(r.venues))
	for i := range r.venues {
		weights[i] = r.venues[i].Weight
	}
	return weights
}
