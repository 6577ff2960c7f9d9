package cards

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DedS3t/monopoly-engine/app/models"
)

//go:embed cards.json
var defaultCards []byte

var (
	ErrInvalidDeck = errors.New("invalid deck")
	ErrEmptyDeck   = errors.New("deck is empty")
)

// Shuffler is the randomness a deck needs. *rand.Rand satisfies it.
type Shuffler interface {
	Intn(n int) int
}

// Deck is a cyclic queue: drawn cards go back to the bottom, keepable cards
// leave the deck until returned.
type Deck struct {
	kind  models.DeckKind
	cards []models.Card
}

func NewDeck(kind models.DeckKind, cards []models.Card) (*Deck, error) {
	d := &Deck{kind: kind, cards: make([]models.Card, 0, len(cards))}
	cycling := 0
	for _, c := range cards {
		c.Deck = kind
		if len(c.Effects) == 0 {
			return nil, fmt.Errorf("%w: card %q has no effects", ErrInvalidDeck, c.Code)
		}
		for _, e := range c.Effects {
			if !e.Op.Known() {
				return nil, fmt.Errorf("%w: card %q uses unknown op %q", ErrInvalidDeck, c.Code, e.Op)
			}
		}
		if !c.Keepable {
			cycling++
		}
		d.cards = append(d.cards, c)
	}
	if cycling == 0 {
		return nil, fmt.Errorf("%w: %s deck needs at least one non-keepable card", ErrInvalidDeck, kind)
	}
	return d, nil
}

func (d *Deck) Kind() models.DeckKind {
	return d.kind
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the current order, top first.
func (d *Deck) Cards() []models.Card {
	out := make([]models.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle permutes the deck in place (Fisher-Yates).
func (d *Deck) Shuffle(rng Shuffler) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw takes the top card. Non-keepable cards rotate to the bottom.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, fmt.Errorf("%s: %w", d.kind, ErrEmptyDeck)
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	if !card.Keepable {
		d.cards = append(d.cards, card)
	}
	return card, nil
}

// Return puts a kept card back at the bottom.
func (d *Deck) Return(card models.Card) {
	d.cards = append(d.cards, card)
}

// Decks bundles the chance and community chest decks of one session.
type Decks struct {
	Chance         *Deck
	CommunityChest *Deck
}

type deckFile struct {
	Chance         []models.Card `json:"chance"`
	CommunityChest []models.Card `json:"community_chest"`
}

// LoadCards reads decks from path, or the bundled UK decks when path is
// empty. Every call returns fresh decks.
func LoadCards(path string) (*Decks, error) {
	data := defaultCards
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read cards %s: %w", path, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Decks, error) {
	var f deckFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	chance, err := NewDeck(models.ChanceDeck, f.Chance)
	if err != nil {
		return nil, err
	}
	chest, err := NewDeck(models.CommunityChestDeck, f.CommunityChest)
	if err != nil {
		return nil, err
	}
	return &Decks{Chance: chance, CommunityChest: chest}, nil
}

// For returns the deck of the given kind.
func (ds *Decks) For(kind models.DeckKind) *Deck {
	if kind == models.ChanceDeck {
		return ds.Chance
	}
	return ds.CommunityChest
}

// All lists both decks.
func (ds *Decks) All() []*Deck {
	return []*Deck{ds.Chance, ds.CommunityChest}
}

// Shuffle shuffles both decks with the same source.
func (ds *Decks) Shuffle(rng Shuffler) {
	ds.Chance.Shuffle(rng)
	ds.CommunityChest.Shuffle(rng)
}
