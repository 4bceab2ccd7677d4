// Package engine holds the stateless rules of a Ramudu round. Every function
// works on a roster owned by the caller, who must serialise access to it.
package engine

import (
	"errors"
	"math/rand/v2"

	"ramudu/internal/characters"
	"ramudu/internal/players"
)

var ErrRosterTooLarge = errors.New("roster larger than character catalog")

// Shuffler permutes n elements in place through swap. rand.Shuffle fits.
type Shuffler func(n int, swap func(i, j int))

// Deal gives every player a distinct character. Sita is always dealt, and
// Ramudu too once there are two players; the remaining seats draw from a
// uniform permutation of the rest of the catalog. The dealt hand is then
// permuted across the roster so each seat is equally likely to hold any role.
func Deal(roster *players.Roster, catalog characters.Catalog, shuffle Shuffler) error {
	n := roster.Len()
	if n > catalog.Size() {
		return ErrRosterTooLarge
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	hand := make(characters.Catalog, 0, n)
	rest := make(characters.Catalog, 0, catalog.Size())
	for _, ch := range catalog {
		switch {
		case ch.IsHidden() && len(hand) < n:
			hand = append(hand, ch)
		case ch.IsGuessing() && n >= 2:
			hand = append(hand, ch)
		default:
			rest = append(rest, ch)
		}
	}

	permute(rest, shuffle)
	hand = append(hand, rest[:n-len(hand)]...)
	permute(hand, shuffle)

	for i, p := range roster.All() {
		ch := hand[i]
		p.Character = &ch
	}
	return nil
}

func permute(deck characters.Catalog, shuffle Shuffler) {
	if len(deck) < 2 {
		return
	}
	shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
