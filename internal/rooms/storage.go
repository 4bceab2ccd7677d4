package rooms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ramudu/internal/players"
)

const maxCodeAttempts = 10

// Store is the registry of live rooms. Its mutex guards only the map and is
// never held while waiting on a room's Mu.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
		now:   time.Now,
	}
}

// Create registers a new room whose only player is the host. The room is
// returned with Mu held so the caller can finish setting it up before any
// other action reaches it; the caller must unlock it.
func (s *Store) Create(hostID, hostName string) (*Room, error) {
	roster := players.NewRoster()
	roster.Add(hostID, hostName)
	room := &Room{HostID: hostID, Players: roster}
	room.Mu.Lock()

	s.mu.Lock()
	defer s.mu.Unlock()

	for range maxCodeAttempts {
		code, err := GenerateCode()
		if err != nil {
			room.Mu.Unlock()
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		now := s.now()
		room.Code = code
		room.CreatedAt = now
		room.LastActive = now
		s.rooms[code] = room
		return room, nil
	}
	room.Mu.Unlock()
	return nil, fmt.Errorf("failed to generate unique room code after %d attempts", maxCodeAttempts)
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[NormalizeCode(code)]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, NormalizeCode(code))
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Sweep closes and removes every room idle for longer than ttl and returns
// their codes. A zero ttl sweeps nothing.
func (s *Store) Sweep(ttl time.Duration, now time.Time) []string {
	if ttl <= 0 {
		return nil
	}

	var swept []string
	for _, room := range s.List() {
		room.Mu.Lock()
		stale := !room.Closed && now.Sub(room.LastActive) > ttl
		if stale {
			room.Closed = true
		}
		room.Mu.Unlock()

		if stale {
			s.Delete(room.Code)
			swept = append(swept, room.Code)
		}
	}
	return swept
}

// RunSweeper sweeps every interval until ctx is done, reporting each removed
// room to onEvict.
func (s *Store) RunSweeper(ctx context.Context, ttl, interval time.Duration, onEvict func(code string)) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, code := range s.Sweep(ttl, s.now()) {
				if onEvict != nil {
					onEvict(code)
				}
			}
		}
	}
}
