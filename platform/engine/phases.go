package engine

import "github.com/DedS3t/monopoly-engine/app/models"

// completesPhase reports whether applying the action ends the phase.
func completesPhase(a models.Action) bool {
	switch a {
	case models.ActionNextPhase, models.ActionRoll, models.ActionBuy, models.ActionAuction:
		return true
	}
	return false
}

// actor is the player expected to act: the current bidder while an auction
// is running, otherwise the turn player.
func (g *Game) actor() *models.Player {
	if g.phase == models.PhaseAuction && g.auction != nil && !g.auction.Over {
		return g.players[g.auction.CurrentBidder]
	}
	return g.players[g.current]
}

// ActingPlayer is the player the next Step acts for.
func (g *Game) ActingPlayer() models.Player {
	return *g.actor()
}

// PossibleActions is the legal action set of the acting player.
func (g *Game) PossibleActions() []models.Action {
	if g.state != models.StateRunning {
		return nil
	}
	return g.possibleFor(g.actor())
}

func (g *Game) possibleFor(p *models.Player) []models.Action {
	var out []models.Action
	indebted := len(g.debts[p.ID]) > 0

	switch g.phase {
	case models.PhasePreRoll, models.PhasePostRoll:
		if !indebted {
			out = append(out, models.ActionNextPhase)
		}
		if g.phase == models.PhasePreRoll && p.InJail && !indebted {
			if p.Money >= g.rules.JailFine {
				out = append(out, models.ActionPayJailFine)
			}
			if p.JailCardCount() > 0 {
				out = append(out, models.ActionUseJailCard)
			}
		}
		if indebted && p.Money >= sumDebts(g.debts[p.ID]) {
			out = append(out, models.ActionPayDebt)
		}
		financial := []models.Action{models.ActionMortgage, models.ActionSell}
		if !indebted {
			financial = []models.Action{models.ActionMortgage, models.ActionUnmortgage, models.ActionDevelop, models.ActionSell}
		}
		for _, a := range financial {
			if len(g.Candidates(p.ID, a)) > 0 {
				out = append(out, a)
			}
		}
		out = append(out, models.ActionForfeit)

	case models.PhaseRoll:
		if g.turn.HasRolled {
			out = append(out, models.ActionNextPhase)
		} else {
			out = append(out, models.ActionRoll)
		}

	case models.PhaseBuy:
		tile := g.board.MustGet(p.TileID)
		if tile.Kind.Buyable() && g.tiles[tile.ID].OwnerID == nil && !indebted {
			if p.Money >= tile.Price {
				out = append(out, models.ActionBuy)
			}
			out = append(out, models.ActionAuction)
		} else {
			out = append(out, models.ActionNextPhase)
		}

	case models.PhaseAuction:
		if g.auction == nil || g.auction.Over {
			out = append(out, models.ActionNextPhase)
			break
		}
		if p.Money >= g.auction.CurrentPrice+g.rules.AuctionIncrement {
			out = append(out, models.ActionBid)
		}
		out = append(out, models.ActionAbstain)
	}
	return out
}

// Candidates lists the tiles on which the player may currently apply a
// tile-targeting action.
func (g *Game) Candidates(playerID int, action models.Action) []int {
	var check func(int, int) error
	switch action {
	case models.ActionMortgage:
		check = g.checkMortgage
	case models.ActionUnmortgage:
		check = g.checkUnmortgage
	case models.ActionDevelop:
		check = g.checkDevelop
	case models.ActionSell:
		check = g.checkSell
	default:
		return nil
	}
	var out []int
	for _, id := range g.OwnedTiles(playerID) {
		if check(playerID, id) == nil {
			out = append(out, id)
		}
	}
	return out
}

func contains(actions []models.Action, a models.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

// nextPhase computes the phase after the current one completes. turnOver is
// true when the turn passes to the next player.
func (g *Game) nextPhase() (next models.TurnPhase, turnOver bool) {
	switch g.phase {
	case models.PhasePreRoll:
		return models.PhaseRoll, false
	case models.PhaseRoll:
		return models.PhaseBuy, false
	case models.PhaseBuy:
		if g.turn.AuctionRequested {
			return models.PhaseAuction, false
		}
		return models.PhasePostRoll, false
	case models.PhaseAuction:
		return models.PhasePostRoll, false
	}
	if g.rollsAgain() {
		return models.PhaseRoll, false
	}
	return models.PhasePreRoll, true
}

func (g *Game) rollsAgain() bool {
	p := g.players[g.current]
	return g.turn.HasRolled &&
		g.turn.LastRoll.Double() &&
		!g.turn.ReleasedFromJail &&
		!p.InJail &&
		!p.Forfeited &&
		g.turn.ConsecutiveDoubles < g.rules.MaxDoubles
}
