package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"backend-geolog/internal/archive"
	"backend-geolog/internal/location"
	"backend-geolog/internal/shared/geo"
	"backend-geolog/internal/stream"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("recorder: session not found")

var nowFn = time.Now

// timestampLayout is a display format; records are never ordered by it.
const timestampLayout = time.RFC1123

// Service captures fixes from the positioning provider into per-session
// in-memory lists and persists chosen records to the archive. Session lists
// live for the process lifetime only.
type Service struct {
	provider location.Provider
	archive  *archive.Service
	hub      *stream.Hub

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(provider location.Provider, archiveSvc *archive.Service, hub *stream.Hub) *Service {
	return &Service{
		provider: provider,
		archive:  archiveSvc,
		hub:      hub,
		sessions: map[string]*Session{},
	}
}

func (s *Service) StartSession(_ context.Context, deviceID string) Session {
	session := &Session{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		StartedAt: nowFn(),
		Fixes:     []archive.LocationRecord{},
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return *session
}

// CaptureFix asks the provider for permission, reads one fix, and appends the
// resulting record to the session list. A denied permission or failed read
// leaves the list untouched. No durable write happens here.
func (s *Service) CaptureFix(ctx context.Context, sessionID string) (archive.LocationRecord, error) {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return archive.LocationRecord{}, ErrSessionNotFound
	}

	if err := s.provider.RequestPermission(ctx); err != nil {
		return archive.LocationRecord{}, err
	}

	fix, err := s.provider.CurrentFix(ctx)
	if err != nil {
		return archive.LocationRecord{}, err
	}

	record := archive.LocationRecord{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: nowFn().Format(timestampLayout),
	}

	s.mu.Lock()
	session := s.sessions[sessionID]
	session.Fixes = append(session.Fixes, record)
	s.mu.Unlock()

	if s.hub != nil {
		payload, _ := json.Marshal(record)
		s.hub.Broadcast(sessionID, payload)
	}
	return record, nil
}

// Persist saves one session record to the durable archive.
func (s *Service) Persist(ctx context.Context, sessionID string, record archive.LocationRecord) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return s.archive.Append(ctx, record)
}

func (s *Service) Session(_ context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	out := *session
	out.Fixes = append([]archive.LocationRecord{}, session.Fixes...)
	return out, nil
}

func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}

	distance := 0.0
	for i := 1; i < len(session.Fixes); i++ {
		prev, cur := session.Fixes[i-1], session.Fixes[i]
		distance += geo.HaversineKm(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}

	return Summary{
		SessionID:  sessionID,
		FixCount:   len(session.Fixes),
		DistanceKm: distance,
	}, nil
}
