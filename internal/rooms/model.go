package rooms

import (
	"sync"
	"time"

	"ramudu/internal/players"
)

// MaxPlayers is the size of the character catalog.
const MaxPlayers = 10

// Room is one play session. Mu guards every field below it; a Room obtained
// from the Store must be locked before it is read or mutated.
type Room struct {
	Mu sync.Mutex

	Code      string
	HostID    string
	Players   *players.Roster
	Started   bool
	Round     int
	CreatedAt time.Time
	StartedAt time.Time
	// LastActive is bumped by every accepted action and drives idle sweeps.
	LastActive time.Time
	// Closed is set once the room has left the Store. Actions that resolved
	// the room before removal see it and do nothing.
	Closed bool
}

// Snapshot is a detached copy of a room's public state.
type Snapshot struct {
	ID        string           `json:"id"`
	HostID    string           `json:"hostId"`
	Players   []players.Player `json:"players"`
	IsStarted bool             `json:"isStarted"`
}

// Snapshot must be called with Mu held.
func (r *Room) Snapshot() Snapshot {
	return Snapshot{
		ID:        r.Code,
		HostID:    r.HostID,
		Players:   r.Players.GetList(),
		IsStarted: r.Started,
	}
}

// Touch must be called with Mu held.
func (r *Room) Touch(now time.Time) {
	r.LastActive = now
}

func (r *Room) IsHost(connID string) bool {
	return r.HostID == connID
}
