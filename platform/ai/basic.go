package ai

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

// DefaultReserve is the cash Basic keeps back from purchases.
const DefaultReserve = 150

// Basic buys and builds while it can keep Reserve in hand, bids up to the
// list price and leaves jail with a card or the fine when it can.
type Basic struct {
	Reserve int
}

func (b *Basic) ConsiderAction(game engine.View, player models.Player, phase models.TurnPhase, possible []models.Action) []engine.Input {
	switch phase {
	case models.PhasePreRoll, models.PhasePostRoll:
		return b.manage(game, player, phase, possible)
	case models.PhaseRoll:
		if has(possible, models.ActionRoll) {
			return do(models.ActionRoll)
		}
	case models.PhaseBuy:
		tile := game.Board().MustGet(player.TileID)
		if has(possible, models.ActionBuy) && player.Money-tile.Price >= b.Reserve {
			return do(models.ActionBuy)
		}
		if has(possible, models.ActionAuction) {
			return do(models.ActionAuction)
		}
	case models.PhaseAuction:
		return b.bid(game, player, possible)
	}
	return do(models.ActionNextPhase)
}

func (b *Basic) manage(game engine.View, player models.Player, phase models.TurnPhase, possible []models.Action) []engine.Input {
	if !has(possible, models.ActionNextPhase) {
		return liquidate(game, player, possible)
	}
	if phase == models.PhasePreRoll && player.InJail {
		if has(possible, models.ActionUseJailCard) {
			return do(models.ActionUseJailCard)
		}
		if has(possible, models.ActionPayJailFine) && player.Money-game.Rules().JailFine >= b.Reserve {
			return do(models.ActionPayJailFine)
		}
	}
	if phase == models.PhasePostRoll {
		rules := game.Rules()
		for _, id := range game.Candidates(player.ID, models.ActionUnmortgage) {
			tile := game.Board().MustGet(id)
			cost := tile.MortgageValue + tile.MortgageValue*rules.UnmortgageInterest/100
			if player.Money-cost >= 2*b.Reserve {
				return []engine.Input{engine.On(models.ActionUnmortgage, id)}
			}
		}
		for _, id := range game.Candidates(player.ID, models.ActionDevelop) {
			if player.Money-game.Board().MustGet(id).HouseCost >= b.Reserve {
				return []engine.Input{engine.On(models.ActionDevelop, id)}
			}
		}
	}
	return do(models.ActionNextPhase)
}

func (b *Basic) bid(game engine.View, player models.Player, possible []models.Action) []engine.Input {
	if has(possible, models.ActionNextPhase) {
		return do(models.ActionNextPhase)
	}
	auction, ok := game.Auction()
	if ok && has(possible, models.ActionBid) {
		next := auction.CurrentPrice + game.Rules().AuctionIncrement
		tile := game.Board().MustGet(auction.TileID)
		if next <= tile.Price && player.Money-next >= b.Reserve {
			return do(models.ActionBid)
		}
	}
	return do(models.ActionAbstain)
}
