package cards

import (
	"math/rand"
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(amount int) []models.Effect {
	return []models.Effect{{Op: models.OpCollect, Amount: amount}}
}

func TestBundledDecks(t *testing.T) {
	decks, err := LoadCards("")
	require.NoError(t, err)

	assert.Equal(t, 17, decks.Chance.Len())
	assert.Equal(t, 15, decks.CommunityChest.Len())
	for _, d := range decks.All() {
		for _, c := range d.Cards() {
			assert.Equal(t, d.Kind(), c.Deck, c.Code)
		}
	}
}

func TestDrawRotatesToBottom(t *testing.T) {
	d, err := NewDeck(models.ChanceDeck, []models.Card{
		{Code: "a", Effects: collect(1)},
		{Code: "b", Effects: collect(2)},
		{Code: "c", Effects: collect(3)},
	})
	require.NoError(t, err)

	var drawn []string
	for i := 0; i < 7; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		drawn = append(drawn, c.Code)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c", "a"}, drawn)
	assert.Equal(t, 3, d.Len())
}

func TestKeepableCardLeavesDeckUntilReturned(t *testing.T) {
	d, err := NewDeck(models.CommunityChestDeck, []models.Card{
		{Code: "jail", Keepable: true, Effects: []models.Effect{{Op: models.OpJailFree}}},
		{Code: "cash", Effects: collect(10)},
	})
	require.NoError(t, err)

	kept, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, "jail", kept.Code)
	assert.Equal(t, 1, d.Len())

	next, _ := d.Draw()
	assert.Equal(t, "cash", next.Code)
	next, _ = d.Draw()
	assert.Equal(t, "cash", next.Code)

	d.Return(kept)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "jail", d.Cards()[1].Code)
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	first, err := LoadCards("")
	require.NoError(t, err)
	second, err := LoadCards("")
	require.NoError(t, err)

	first.Shuffle(rand.New(rand.NewSource(42)))
	second.Shuffle(rand.New(rand.NewSource(42)))

	assert.Equal(t, first.Chance.Cards(), second.Chance.Cards())
	assert.Equal(t, first.CommunityChest.Cards(), second.CommunityChest.Cards())
	assert.ElementsMatch(t, mustLoad(t).Chance.Cards(), first.Chance.Cards())
}

func mustLoad(t *testing.T) *Decks {
	decks, err := LoadCards("")
	require.NoError(t, err)
	return decks
}

func TestRejectsInvalidDecks(t *testing.T) {
	_, err := NewDeck(models.ChanceDeck, []models.Card{{Code: "x", Effects: []models.Effect{{Op: "teleport_home"}}}})
	assert.ErrorIs(t, err, ErrInvalidDeck)

	_, err = NewDeck(models.ChanceDeck, []models.Card{{Code: "x"}})
	assert.ErrorIs(t, err, ErrInvalidDeck)

	_, err = NewDeck(models.ChanceDeck, []models.Card{{Code: "x", Keepable: true, Effects: []models.Effect{{Op: models.OpJailFree}}}})
	assert.ErrorIs(t, err, ErrInvalidDeck)

	_, err = Parse([]byte(`{"chance": 3}`))
	assert.ErrorIs(t, err, ErrInvalidDeck)
}
