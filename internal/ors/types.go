package ors

import "encoding/json"

// Coordinates is a (longitude, latitude) pair, in that order, matching the
// GeoJSON convention the routing API uses.
type Coordinates [2]float64

// Lon returns the longitude component.
func (c Coordinates) Lon() float64 {
	return c[0]
}

// Lat returns the latitude component.
func (c Coordinates) Lat() float64 {
	return c[1]
}

// Summary carries total distance and duration for a route, in the units the
// route was requested with and seconds respectively.
type Summary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Step is a single turn-by-turn instruction.
type Step struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name,omitempty"`
}

// Segment is one leg of a route with its turn-by-turn steps.
type Segment struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Steps    []Step  `json:"steps,omitempty"`
}

// Route is a single computed route. Geometry passes through verbatim; its
// encoding depends on the request format and nothing downstream interprets it.
type Route struct {
	Summary  Summary         `json:"summary"`
	Segments []Segment       `json:"segments,omitempty"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}
