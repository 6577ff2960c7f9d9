package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
)

// CalculateRent is the rent due on a tile. multiplier scales property and
// railroad rent and, when positive, replaces the utility dice factor.
func (g *Game) CalculateRent(tileID, diceTotal, multiplier int) (int, error) {
	tile, err := g.board.GetByPos(tileID)
	if err != nil {
		return 0, fmt.Errorf("rent on %d: %w", tileID, ErrNotFound)
	}
	return g.rentFor(tile, diceTotal, multiplier), nil
}

func (g *Game) rentFor(tile models.Tile, diceTotal, multiplier int) int {
	s := g.tiles[tile.ID]
	if s.OwnerID == nil || s.Mortgaged {
		return 0
	}
	owner := *s.OwnerID
	scale := multiplier
	if scale < 1 {
		scale = 1
	}

	switch tile.Kind {
	case models.KindProperty:
		level := s.Level()
		rent := tile.Rent[level]
		if level == 0 && g.ownsGroup(owner, tile.Color) {
			rent *= 2
		}
		return rent * scale
	case models.KindRailroad:
		held := g.countOwned(owner, models.KindRailroad)
		return tile.Rent[held-1] * scale
	case models.KindUtility:
		factor := 4
		if g.countOwned(owner, models.KindUtility) >= 2 {
			factor = 10
		}
		if multiplier > 0 {
			factor = multiplier
		}
		return factor * diceTotal
	}
	return 0
}

// PayRent charges the rent of tileID to the payer. A shortfall becomes a
// debt to the owner.
func (g *Game) PayRent(payerID, tileID, diceTotal, multiplier int) error {
	payer, err := g.activePlayer(payerID)
	if err != nil {
		return err
	}
	tile, err := g.board.GetByPos(tileID)
	if err != nil {
		return fmt.Errorf("rent on %d: %w", tileID, ErrNotFound)
	}
	g.chargeRent(payer, tile, diceTotal, multiplier)
	return nil
}

func (g *Game) chargeRent(payer *models.Player, tile models.Tile, diceTotal, multiplier int) {
	s := g.tiles[tile.ID]
	if s.OwnerID == nil || *s.OwnerID == payer.ID {
		return
	}
	amount := g.rentFor(tile, diceTotal, multiplier)
	if amount == 0 {
		return
	}
	owner := g.players[*s.OwnerID]
	if g.transfer(payer, owner, amount) {
		g.bus.Publish(events.PlayerPaidRent, events.RentPayload{PlayerID: payer.ID, OwnerID: owner.ID, TileID: tile.ID, Amount: amount})
	}
}

func (g *Game) ownsGroup(playerID int, color models.Color) bool {
	group := g.board.Group(color)
	if len(group) == 0 {
		return false
	}
	for _, id := range group {
		if !g.tiles[id].OwnedBy(playerID) {
			return false
		}
	}
	return true
}

func (g *Game) countOwned(playerID int, kind models.TileKind) int {
	n := 0
	for _, t := range g.board.OfKind(kind) {
		if g.tiles[t.ID].OwnedBy(playerID) {
			n++
		}
	}
	return n
}
