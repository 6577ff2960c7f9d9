package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humans(t *testing.T, names ...string) fixture {
	return newGame(t, Config{Players: specs(models.Human, names...), Decks: blankDecks(t)}, nil)
}

func TestCalculateRent(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game

	rent, err := g.CalculateRent(1, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, rent, "unowned")

	f.own(0, 1)
	rent, _ = g.CalculateRent(1, 0, 0)
	assert.Equal(t, 2, rent)

	f.own(0, 3)
	rent, _ = g.CalculateRent(1, 0, 0)
	assert.Equal(t, 4, rent, "full group doubles base rent")

	g.tiles[1].Houses = 2
	rent, _ = g.CalculateRent(1, 0, 0)
	assert.Equal(t, 30, rent)
	g.tiles[1].Houses, g.tiles[1].Hotel = 4, true
	rent, _ = g.CalculateRent(1, 0, 0)
	assert.Equal(t, 250, rent)

	f.own(1, 5, 15)
	rent, _ = g.CalculateRent(5, 0, 0)
	assert.Equal(t, 50, rent)
	rent, _ = g.CalculateRent(5, 0, 2)
	assert.Equal(t, 100, rent)

	f.own(1, 12)
	rent, _ = g.CalculateRent(12, 7, 0)
	assert.Equal(t, 28, rent)
	f.own(1, 28)
	rent, _ = g.CalculateRent(12, 7, 0)
	assert.Equal(t, 70, rent)
	rent, _ = g.CalculateRent(12, 7, 4)
	assert.Equal(t, 28, rent, "card multiplier overrides the utility factor")

	g.tiles[5].Mortgaged = true
	rent, _ = g.CalculateRent(5, 0, 0)
	assert.Zero(t, rent)

	_, err = g.CalculateRent(40, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuyValidates(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game

	assert.ErrorIs(t, g.Buy(0, 0, 0), ErrInvalidMove, "GO is not buyable")
	assert.ErrorIs(t, g.Buy(0, 39, 2000), ErrInvalidMove, "too expensive")
	require.NoError(t, g.Buy(0, 39, 400))
	assert.ErrorIs(t, g.Buy(1, 39, 400), ErrInvalidMove, "already owned")
	assert.ErrorIs(t, g.Buy(0, 99, 1), ErrNotFound)

	s, _ := g.TileState(39)
	assert.True(t, s.OwnedBy(0))
	assert.Equal(t, 1100, g.players[0].Money)
	assert.Equal(t, []int{39}, g.OwnedTiles(0))
	assert.Len(t, f.rec.OfType(events.PlayerBoughtTile), 1)
	f.conserved(t)
}

func TestMortgageAndUnmortgage(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game
	f.own(0, 1, 3)

	assert.ErrorIs(t, g.Mortgage(1, 1), ErrInvalidMove, "not the owner")
	require.NoError(t, g.Mortgage(0, 1))
	assert.Equal(t, 1550, g.players[0].Money)
	assert.ErrorIs(t, g.Mortgage(0, 1), ErrInvalidMove, "already mortgaged")

	assert.ErrorIs(t, g.Develop(0, 3), ErrInvalidMove, "group has a mortgaged tile")
	assert.Empty(t, g.Candidates(0, models.ActionDevelop))
	assert.Equal(t, []int{1}, g.Candidates(0, models.ActionUnmortgage))

	require.NoError(t, g.Unmortgage(0, 1))
	assert.Equal(t, 1550-55, g.players[0].Money)
	assert.ErrorIs(t, g.Unmortgage(0, 1), ErrInvalidMove)
	f.conserved(t)
}

func TestMortgageNeedsUnbuiltGroup(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game
	f.own(0, 1, 3)

	require.NoError(t, g.Develop(0, 3))
	assert.ErrorIs(t, g.Mortgage(0, 1), ErrInvalidMove)
	assert.ErrorIs(t, g.Mortgage(0, 3), ErrInvalidMove)
	assert.Empty(t, g.Candidates(0, models.ActionMortgage))
}

func TestDevelopEvenlyAndSell(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game

	assert.ErrorIs(t, g.Develop(0, 1), ErrInvalidMove, "not owned")
	f.own(0, 1)
	assert.ErrorIs(t, g.Develop(0, 1), ErrInvalidMove, "group incomplete")
	f.own(0, 3)
	f.own(0, 5)
	assert.ErrorIs(t, g.Develop(0, 5), ErrInvalidMove, "railroads are not developable")

	require.NoError(t, g.Develop(0, 1))
	assert.ErrorIs(t, g.Develop(0, 1), ErrInvalidMove, "uneven")
	assert.Equal(t, []int{3}, g.Candidates(0, models.ActionDevelop))
	require.NoError(t, g.Develop(0, 3))
	assert.Equal(t, 30, g.HousesAvailable())
	assert.Equal(t, 1440, g.players[0].Money)

	require.NoError(t, g.Develop(0, 3))
	assert.ErrorIs(t, g.Sell(0, 1), ErrInvalidMove, "uneven sale")
	require.NoError(t, g.Sell(0, 3))
	assert.Equal(t, 1440-30+15, g.players[0].Money)
	assert.Equal(t, 30, g.HousesAvailable())
	f.conserved(t)
}

func TestHotelUsesPools(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game
	f.own(0, 1, 3)

	for i := 0; i < 4; i++ {
		require.NoError(t, g.Develop(0, 1))
		require.NoError(t, g.Develop(0, 3))
	}
	assert.Equal(t, 24, g.HousesAvailable())

	require.NoError(t, g.Develop(0, 1))
	s, _ := g.TileState(1)
	assert.True(t, s.Hotel)
	assert.Equal(t, models.Hotel, s.Level())
	assert.Equal(t, 28, g.HousesAvailable())
	assert.Equal(t, 11, g.HotelsAvailable())
	assert.ErrorIs(t, g.Develop(0, 1), ErrInvalidMove, "already a hotel")

	g.houses = 3
	assert.ErrorIs(t, g.Sell(0, 1), ErrInvalidMove, "hotel sale needs four houses")
	g.houses = 28
	require.NoError(t, g.Sell(0, 1))
	s, _ = g.TileState(1)
	assert.False(t, s.Hotel)
	assert.Equal(t, 4, s.Houses)
	assert.Equal(t, 24, g.HousesAvailable())
	assert.Equal(t, 12, g.HotelsAvailable())

	g.hotels = 0
	assert.ErrorIs(t, g.Develop(0, 3), ErrInvalidMove, "no hotels left")
	g.hotels = 12
	g.houses = 0
	g.tiles[3].Houses = 3
	g.tiles[1].Houses = 3
	assert.ErrorIs(t, g.Develop(0, 3), ErrInvalidMove, "no houses left")
}

func TestRentShortfallBecomesDebt(t *testing.T) {
	f := humans(t, "owner", "tenant", "third")
	g := f.game
	f.own(0, 39)
	tenant := g.players[1]
	f.setMoney(1, 20)

	require.NoError(t, g.PayRent(1, 39, 0, 0))
	assert.Equal(t, 20, tenant.Money, "nothing moves on a shortfall")
	assert.Equal(t, []Debt{{CreditorID: intPtr(0), Amount: 50}}, g.Debts(1))
	assert.Len(t, f.rec.OfType(events.PlayerInDebt), 1)
	assert.ErrorIs(t, g.PayDebt(1), ErrInvalidMove)

	f.setMoney(1, 70)
	require.NoError(t, g.PayDebt(1))
	assert.Equal(t, 20, tenant.Money)
	assert.Equal(t, 1550, g.players[0].Money)
	assert.Empty(t, g.Debts(1))
}

func intPtr(i int) *int { return &i }

func TestLandingChargesRent(t *testing.T) {
	f := humans(t, "tenant", "owner")
	g := f.game
	f.own(1, 3)
	f.do(t, models.ActionNextPhase)
	f.do(t, models.ActionRoll)

	assert.Equal(t, 1496, g.players[0].Money)
	assert.Equal(t, 1504, g.players[1].Money)
	paid := f.rec.OfType(events.PlayerPaidRent)
	require.Len(t, paid, 1)
	assert.Equal(t, events.RentPayload{PlayerID: 0, OwnerID: 1, TileID: 3, Amount: 4}, paid[0].Payload)

	assert.ErrorIs(t, g.PayRent(0, 40, 0, 0), ErrNotFound)
	assert.ErrorIs(t, g.PayRent(9, 3, 0, 0), ErrNotFound)
	f.conserved(t)
}

func TestDebtWithholdsNextPhase(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game
	f.own(1, 39)
	f.own(0, 5)
	f.setMoney(0, 10)
	require.NoError(t, g.PayRent(0, 39, 0, 0))

	possible := g.PossibleActions()
	assert.NotContains(t, possible, models.ActionNextPhase)
	assert.NotContains(t, possible, models.ActionPayDebt)
	assert.Contains(t, possible, models.ActionMortgage)
	assert.Contains(t, possible, models.ActionForfeit)

	f.step(t, &Input{Action: models.ActionMortgage, TileID: intPtr(5)})
	assert.Contains(t, g.PossibleActions(), models.ActionPayDebt)
	f.do(t, models.ActionPayDebt)
	assert.Contains(t, g.PossibleActions(), models.ActionNextPhase)
	assert.Equal(t, 60, g.players[0].Money)
	f.conserved(t)
}

func TestForfeitReturnsAssetsAndEndsGame(t *testing.T) {
	f := humans(t, "a", "b", "c")
	g := f.game
	f.own(0, 1, 3, 5)
	require.NoError(t, g.Develop(0, 1))
	require.NoError(t, g.Mortgage(0, 5))
	g.players[0].JailCards = []models.Card{{Deck: models.CommunityChestDeck, Code: "get_out_of_jail", Keepable: true, Effects: []models.Effect{{Op: models.OpJailFree}}}}
	f.setMoney(0, 30)
	f.own(1, 39)
	require.NoError(t, g.PayRent(0, 39, 0, 0))

	res := f.do(t, models.ActionForfeit)
	assert.Equal(t, PhaseDone, res.Message)
	a := g.players[0]
	assert.True(t, a.Forfeited)
	assert.Zero(t, a.Money)
	assert.Empty(t, g.OwnedTiles(0))
	assert.Equal(t, 32, g.HousesAvailable())
	s, _ := g.TileState(5)
	assert.False(t, s.Mortgaged)
	assert.Equal(t, 2, g.decks.CommunityChest.Len())
	assert.Equal(t, 1530, g.players[1].Money, "creditor receives what was left")
	assert.Equal(t, 1, g.CurrentPlayer().ID)
	assert.Equal(t, models.StateRunning, g.State())
	f.conserved(t)

	require.NoError(t, g.Forfeit(2))
	assert.Equal(t, models.StateOver, g.State())
	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "b", winner.Name)
	assert.Len(t, f.rec.OfType(events.GameEnded), 1)

	_, err := g.Step(nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCardEffects(t *testing.T) {
	f := humans(t, "a", "b", "c")
	g := f.game
	a := g.players[0]

	card := func(effects ...models.Effect) models.Card {
		return models.Card{Code: "test", Effects: effects}
	}

	g.applyCard(a, card(models.Effect{Op: models.OpCollectFromEach, Amount: 10}))
	assert.Equal(t, 1520, a.Money)
	assert.Equal(t, 1490, g.players[1].Money)

	g.applyCard(a, card(models.Effect{Op: models.OpPayEach, Amount: 50}))
	assert.Equal(t, 1420, a.Money)
	assert.Equal(t, 1540, g.players[2].Money)

	f.own(0, 1, 3)
	g.tiles[1].Houses = 2
	g.tiles[3].Houses, g.tiles[3].Hotel = 4, true
	g.applyCard(a, card(models.Effect{Op: models.OpRepairs, House: 25, HotelCost: 100}))
	assert.Equal(t, 1420-50-100, a.Money)

	a.TileID = 7
	g.turn.LastRoll = Dice{3, 4}
	f.own(1, 12)
	g.applyCard(a, card(models.Effect{Op: models.OpAdvanceNearest, Kind: models.KindUtility, Multiplier: 4}))
	assert.Equal(t, 12, a.TileID)
	assert.Equal(t, 1270-28, a.Money)

	a.TileID = 36
	g.applyCard(a, card(models.Effect{Op: models.OpAdvanceTo, Tile: "red_03"}))
	assert.Equal(t, 24, a.TileID)
	assert.Equal(t, 1242+200, a.Money)

	g.applyCard(a, card(models.Effect{Op: models.OpJail}, models.Effect{Op: models.OpCollect, Amount: 500}))
	assert.True(t, a.InJail)
	assert.Equal(t, 1442, a.Money, "effects stop once jailed")

	keep := models.Card{Deck: models.ChanceDeck, Code: "get_out_of_jail", Keepable: true, Effects: []models.Effect{{Op: models.OpJailFree}}}
	g.applyCard(a, keep)
	assert.Equal(t, 1, a.JailCardCount())
	f.conserved(t)
}

func TestNearestRailroadDoublesRent(t *testing.T) {
	f := humans(t, "a", "b")
	g := f.game
	a := g.players[0]
	f.own(1, 15)
	a.TileID = 7

	g.applyCard(a, models.Card{Code: "adv_to_rr", Effects: []models.Effect{{Op: models.OpAdvanceNearest, Kind: models.KindRailroad, Multiplier: 2}}})
	assert.Equal(t, 15, a.TileID)
	assert.Equal(t, 1450, a.Money)
	assert.Equal(t, 1550, g.players[1].Money)
}
