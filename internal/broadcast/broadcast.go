package broadcast

import (
	"encoding/json"
	"sync"

	"ramudu/internal/events"
	"ramudu/internal/logger"
	"ramudu/internal/wshub"
)

// Broadcaster associates connections with rooms and fans named events out to
// them through the hub. It satisfies game.Publisher.
type Broadcaster struct {
	Mu     sync.Mutex
	Groups map[string]map[string]bool // room code -> connection ids
	hub    *wshub.Hub
}

func NewBroadcaster(hub *wshub.Hub) *Broadcaster {
	return &Broadcaster{
		Groups: make(map[string]map[string]bool),
		hub:    hub,
	}
}

func (b *Broadcaster) Subscribe(roomCode, connID string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	group, ok := b.Groups[roomCode]
	if !ok {
		group = make(map[string]bool)
		b.Groups[roomCode] = group
	}
	group[connID] = true
}

// Forget drops a closed connection from every room it had joined.
func (b *Broadcaster) Forget(connID string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for code, group := range b.Groups {
		delete(group, connID)
		if len(group) == 0 {
			delete(b.Groups, code)
		}
	}
}

func (b *Broadcaster) CloseRoom(roomCode string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	delete(b.Groups, roomCode)
}

func (b *Broadcaster) Send(connID string, ev events.Event) {
	data, ok := encode(ev)
	if !ok {
		return
	}
	b.hub.SendTo(connID, data)
}

func (b *Broadcaster) Broadcast(roomCode string, ev events.Event) {
	data, ok := encode(ev)
	if !ok {
		return
	}

	b.Mu.Lock()
	defer b.Mu.Unlock()
	for connID := range b.Groups[roomCode] {
		b.hub.SendTo(connID, data)
	}
}

func encode(ev events.Event) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Log.Errorw("[Broadcast] marshal error", "event", ev.Name, "error", err)
		return nil, false
	}
	return data, true
}
