package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toAuction rolls the first player onto Whitechapel and opens an auction.
func toAuction(t *testing.T, names ...string) fixture {
	f := newGame(t, Config{Players: specs(models.Human, names...), Decks: blankDecks(t), RNG: dice([2]int{1, 2})}, nil)
	f.do(t, models.ActionNextPhase)
	f.do(t, models.ActionRoll)
	assert.ElementsMatch(t, []models.Action{models.ActionBuy, models.ActionAuction}, f.game.PossibleActions())
	res := f.do(t, models.ActionAuction)
	require.Equal(t, models.PhaseAuction, *res.NextPhase)
	return f
}

func TestAuctionRotatesAndSellsToLastBidder(t *testing.T) {
	f := toAuction(t, "a", "b", "c")
	g := f.game

	a, ok := g.Auction()
	require.True(t, ok)
	assert.Equal(t, 3, a.TileID)
	assert.Equal(t, 0, g.ActingPlayer().ID)

	f.do(t, models.ActionBid)
	assert.Equal(t, 1, g.ActingPlayer().ID)

	in := Do(models.ActionAbstain)
	_, err := g.StepAs(0, &in)
	assert.ErrorIs(t, err, ErrInvalidMove, "out of turn")

	f.do(t, models.ActionBid)
	f.do(t, models.ActionAbstain)
	assert.Equal(t, 0, g.ActingPlayer().ID)
	f.do(t, models.ActionAbstain)

	a, _ = g.Auction()
	assert.True(t, a.Over)
	assert.True(t, a.Sold)
	assert.Equal(t, 20, a.CurrentPrice)
	s, _ := g.TileState(3)
	assert.True(t, s.OwnedBy(1))
	assert.Equal(t, 1480, g.players[1].Money)

	var bidders []int
	for _, e := range f.rec.OfType(events.AuctionBid) {
		bidders = append(bidders, *e.Payload.(events.AuctionPayload).BidderID)
	}
	assert.Equal(t, []int{0, 1}, bidders)

	assert.Equal(t, []models.Action{models.ActionNextPhase}, g.PossibleActions())
	res := f.do(t, models.ActionNextPhase)
	assert.Equal(t, models.PhasePostRoll, *res.NextPhase)
	_, ok = g.Auction()
	assert.False(t, ok)
	f.conserved(t)
}

func TestAuctionWithoutBidsLeavesTileUnsold(t *testing.T) {
	f := toAuction(t, "a", "b", "c")
	g := f.game

	f.do(t, models.ActionAbstain)
	f.do(t, models.ActionAbstain)
	a, _ := g.Auction()
	assert.False(t, a.Over, "one player has not abstained yet")
	f.do(t, models.ActionAbstain)

	a, _ = g.Auction()
	assert.True(t, a.Over)
	assert.False(t, a.Sold)
	s, _ := g.TileState(3)
	assert.Nil(t, s.OwnerID)

	ended := f.rec.OfType(events.AuctionEnded)
	require.Len(t, ended, 1)
	assert.False(t, ended[0].Payload.(events.AuctionPayload).Sold)
}

func TestAuctionSkipsForfeitedSeats(t *testing.T) {
	f := toAuction(t, "a", "b", "c")
	g := f.game
	g.players[1].Forfeited = true

	f.do(t, models.ActionBid)
	assert.Equal(t, 2, g.ActingPlayer().ID)
	f.do(t, models.ActionAbstain)

	a, _ := g.Auction()
	assert.True(t, a.Sold)
	s, _ := g.TileState(3)
	assert.True(t, s.OwnedBy(0))
	assert.Equal(t, 1490, g.players[0].Money)
}

func TestAuctionBidNeedsFunds(t *testing.T) {
	f := toAuction(t, "a", "b")
	f.setMoney(0, 5)

	assert.Equal(t, []models.Action{models.ActionAbstain}, f.game.PossibleActions())
	in := Do(models.ActionBid)
	_, err := f.game.Step(&in)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestAdvisorCannotActAfterItsBidEnds(t *testing.T) {
	players := []models.PlayerSpec{{Name: "a", Controller: models.Human}, {Name: "b", Controller: models.AI}}
	bidder := advisorFunc(func(_ View, _ models.Player, phase models.TurnPhase, _ []models.Action) []Input {
		if phase == models.PhaseAuction {
			return []Input{Do(models.ActionAbstain), Do(models.ActionNextPhase)}
		}
		return []Input{Do(models.ActionNextPhase)}
	})
	f := newGame(t, Config{Players: players, Decks: blankDecks(t), RNG: dice([2]int{1, 2})}, bidder)
	g := f.game
	f.do(t, models.ActionNextPhase)
	f.do(t, models.ActionRoll)
	f.do(t, models.ActionAuction)
	f.do(t, models.ActionAbstain)
	require.Equal(t, 1, g.ActingPlayer().ID)

	_, err := g.Step(nil)
	assert.ErrorIs(t, err, ErrAdvisorFault)
	assert.Equal(t, models.PhaseAuction, g.Phase(), "the turn player's auction phase stays open")
	for _, e := range f.rec.OfType(events.PlayerAction) {
		p := e.Payload.(events.ActionPayload)
		assert.False(t, p.PlayerID == 1 && p.Action == models.ActionNextPhase, "seat 1 closed the phase")
	}
}
