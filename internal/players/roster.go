package players

// Roster is the join-ordered list of players in a room.
// It is not safe for concurrent use; the owning room serialises access.
type Roster struct {
	players []*Player
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Add(id string, name string) *Player {
	player := &Player{ID: id, Name: name}
	r.players = append(r.players, player)
	return player
}

func (r *Roster) Get(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindByName returns the earliest-joined player with the given name.
func (r *Roster) FindByName(name string) *Player {
	for _, p := range r.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// HiddenHolder returns the player dealt the hidden role, if any.
func (r *Roster) HiddenHolder() *Player {
	for _, p := range r.players {
		if p.Character != nil && p.Character.IsHidden() {
			return p
		}
	}
	return nil
}

func (r *Roster) Has(id string) bool {
	return r.Get(id) != nil
}

func (r *Roster) Len() int {
	return len(r.players)
}

// All returns the live players in join order. Callers must hold the room lock
// for as long as they use the result.
func (r *Roster) All() []*Player {
	return r.players
}

// GetList returns a copy of every player, safe to hand outside the room lock.
func (r *Roster) GetList() []Player {
	list := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		cp := *p
		if p.Character != nil {
			ch := *p.Character
			cp.Character = &ch
		}
		list = append(list, cp)
	}
	return list
}
