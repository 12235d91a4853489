package archive

// LocationRecord is one captured fix. Timestamp is the display-formatted
// capture time, not a sortable instant.
type LocationRecord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}
