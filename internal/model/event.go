package model

// Event is a dated, placed occurrence attached to a person or family. Both
// fields are optional; an event with neither is still meaningful ("it
// happened, no detail known").
type Event struct {
	Date  string `json:"date,omitempty"`
	Place string `json:"place,omitempty"`
}

// Timestamp is a change or export moment with the source format's date/time
// split preserved.
type Timestamp struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}
