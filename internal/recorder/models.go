package recorder

import (
	"time"

	"backend-geolog/internal/archive"
)

type Session struct {
	ID        string                   `json:"id"`
	DeviceID  string                   `json:"device_id"`
	StartedAt time.Time                `json:"started_at"`
	Fixes     []archive.LocationRecord `json:"fixes"`
}

type Summary struct {
	SessionID  string  `json:"session_id"`
	FixCount   int     `json:"fix_count"`
	DistanceKm float64 `json:"distance_km"`
}
