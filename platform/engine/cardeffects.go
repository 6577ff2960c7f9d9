package engine

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
)

// drawCard takes the top card of a deck and applies its effects to p.
func (g *Game) drawCard(p *models.Player, kind models.DeckKind) {
	card, err := g.decks.For(kind).Draw()
	if err != nil {
		g.log.WithError(err).Warn("draw failed")
		return
	}
	g.turn.LastCard = &card
	g.bus.Publish(events.PlayerDrewCard, events.CardPayload{PlayerID: p.ID, Deck: kind, Code: card.Code, Text: card.Text})
	g.applyCard(p, card)
}

// applyCard interprets the effect ops of a card in order. Effects stop once
// the player is jailed.
func (g *Game) applyCard(p *models.Player, card models.Card) {
	for _, e := range card.Effects {
		g.applyEffect(p, card, e)
		if p.InJail || p.Forfeited {
			return
		}
	}
}

func (g *Game) applyEffect(p *models.Player, card models.Card, e models.Effect) {
	switch e.Op {
	case models.OpCollect:
		g.credit(p, e.Amount)
	case models.OpPay:
		g.payBank(p, e.Amount)
	case models.OpCollectFromEach:
		for _, other := range g.players {
			if other.ID != p.ID && !other.Forfeited {
				g.transfer(other, p, e.Amount)
			}
		}
	case models.OpPayEach:
		for _, other := range g.players {
			if other.ID != p.ID && !other.Forfeited {
				g.transfer(p, other, e.Amount)
			}
		}
	case models.OpAdvanceTo:
		target, _ := g.board.GetByCode(e.Tile)
		g.advance(p, g.board.Distance(p.TileID, target.ID), e.Multiplier)
	case models.OpTeleport:
		target, _ := g.board.GetByCode(e.Tile)
		g.teleport(p, target.ID)
		g.land(p, e.Multiplier)
	case models.OpCollectGo:
		g.credit(p, g.rules.GoBonus)
		g.bus.Publish(events.PlayerPassedGo, events.PassedGoPayload{PlayerID: p.ID, Amount: g.rules.GoBonus})
	case models.OpMove:
		g.advance(p, e.Spaces, 0)
	case models.OpAdvanceNearest:
		g.advance(p, g.nearest(p.TileID, e.Kind), e.Multiplier)
	case models.OpJail:
		g.jail(p, "drew "+card.Code)
	case models.OpJailFree:
		if card.Keepable {
			p.JailCards = append(p.JailCards, card)
		}
	case models.OpRepairs:
		houses, hotels := g.buildings(p.ID)
		g.payBank(p, houses*e.House+hotels*e.HotelCost)
	}
}

// nearest is the forward distance to the next tile of kind.
func (g *Game) nearest(from int, kind models.TileKind) int {
	n := g.board.Len()
	for step := 1; step <= n; step++ {
		if g.board.MustGet((from+step)%n).Kind == kind {
			return step
		}
	}
	return 0
}

// buildings counts the houses and hotels standing on a player's tiles.
func (g *Game) buildings(playerID int) (houses, hotels int) {
	for _, id := range g.OwnedTiles(playerID) {
		s := g.tiles[id]
		if s.Hotel {
			hotels++
		} else {
			houses += s.Houses
		}
	}
	return houses, hotels
}
