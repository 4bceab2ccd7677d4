package characters

// Names of the two characters the scoring rules single out.
const (
	GuessingRole = "Ramudu"
	HiddenRole   = "Sita"
)

// FullScore is what the winner of the Ramudu/Sita duel earns in a round.
const FullScore = 1000

type Character struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Catalog is the fixed ordered set of characters dealt to players.
// Its size caps the roster of a room.
type Catalog []Character

var defaultCatalog = Catalog{
	{Name: GuessingRole, Score: FullScore},
	{Name: HiddenRole, Score: 0},
	{Name: "Lakshmana", Score: 900},
	{Name: "Hanuman", Score: 800},
	{Name: "Vibhishana", Score: 700},
	{Name: "Sugriva", Score: 600},
	{Name: "Jambavan", Score: 500},
	{Name: "Angada", Score: 400},
	{Name: "Indrajit", Score: 300},
	{Name: "Ravana", Score: 200},
}

// Default returns a copy of the reference catalog.
func Default() Catalog {
	c := make(Catalog, len(defaultCatalog))
	copy(c, defaultCatalog)
	return c
}

func (c Catalog) Size() int {
	return len(c)
}

func (ch Character) IsHidden() bool {
	return ch.Name == HiddenRole
}

func (ch Character) IsGuessing() bool {
	return ch.Name == GuessingRole
}
