package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// Advance moves a player delta tiles and resolves the landing tile. A
// forward move that wraps past the end credits the GO bonus first.
func (g *Game) Advance(playerID, delta int) error {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return err
	}
	g.advance(p, delta, 0)
	return nil
}

// AdvanceToTile teleports a player without any GO bonus, then resolves the
// landing tile.
func (g *Game) AdvanceToTile(playerID, tileID int) error {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return err
	}
	if _, err := g.board.GetByPos(tileID); err != nil {
		return fmt.Errorf("advance to %d: %w", tileID, ErrNotFound)
	}
	g.teleport(p, tileID)
	g.land(p, 0)
	return nil
}

func (g *Game) activePlayer(id int) (*models.Player, error) {
	p, err := g.player(id)
	if err != nil {
		return nil, err
	}
	if p.Forfeited {
		return nil, fmt.Errorf("%w: player %d has forfeited", ErrInvalidState, id)
	}
	return p, nil
}

// advance moves and lands. multiplier is passed through to rent.
func (g *Game) advance(p *models.Player, delta, multiplier int) {
	n := g.board.Len()
	from := p.TileID
	raw := from + delta
	if delta > 0 && raw >= n {
		g.credit(p, g.rules.GoBonus)
		g.bus.Publish(events.PlayerPassedGo, events.PassedGoPayload{PlayerID: p.ID, Amount: g.rules.GoBonus})
	}
	p.TileID = ((raw % n) + n) % n
	g.log.WithFields(logrus.Fields{"player": p.Name, "from": from, "to": p.TileID}).Debug("advance")
	g.bus.Publish(events.PlayerAdvance, events.AdvancePayload{PlayerID: p.ID, From: from, To: p.TileID, Delta: delta})
	g.land(p, multiplier)
}

func (g *Game) teleport(p *models.Player, tileID int) {
	from := p.TileID
	p.TileID = tileID
	g.bus.Publish(events.PlayerAdvance, events.AdvancePayload{PlayerID: p.ID, From: from, To: tileID, Teleport: true})
}

// land dispatches on the tile the player stands on.
func (g *Game) land(p *models.Player, multiplier int) {
	tile := g.board.MustGet(p.TileID)
	switch tile.Kind {
	case models.KindGoToJail:
		g.jail(p, "landed on go to jail")
	case models.KindIncomeTax:
		g.payTax(p, tile, g.rules.IncomeTax)
	case models.KindSuperTax:
		g.payTax(p, tile, g.rules.SuperTax)
	case models.KindChance:
		g.drawCard(p, models.ChanceDeck)
	case models.KindCommunityChest:
		g.drawCard(p, models.CommunityChestDeck)
	case models.KindProperty, models.KindRailroad, models.KindUtility:
		s := g.tiles[tile.ID]
		if s.OwnerID != nil && *s.OwnerID != p.ID && !s.Mortgaged && !g.players[*s.OwnerID].Forfeited {
			g.chargeRent(p, tile, g.turn.LastRoll.Total(), multiplier)
		}
	}
}

func (g *Game) payTax(p *models.Player, tile models.Tile, amount int) {
	if g.payBank(p, amount) {
		g.bus.Publish(events.PlayerPaidTax, events.TaxPayload{PlayerID: p.ID, TileID: tile.ID, Amount: amount})
	}
}

// jail moves the player to the jail tile without a GO bonus.
func (g *Game) jail(p *models.Player, reason string) {
	jail, _ := g.board.FirstOfKind(models.KindJail)
	g.teleport(p, jail.ID)
	p.InJail = true
	p.JailTurns = 0
	g.log.WithFields(logrus.Fields{"player": p.Name, "reason": reason}).Debug("jailed")
	g.bus.Publish(events.PlayerInJail, events.JailPayload{PlayerID: p.ID, Reason: reason})
}

func (g *Game) release(p *models.Player, reason string) {
	p.InJail = false
	p.JailTurns = 0
	g.turn.ReleasedFromJail = true
	g.bus.Publish(events.PlayerOutOfJail, events.JailPayload{PlayerID: p.ID, Reason: reason})
}

// roll throws the dice for the turn player and resolves jail and movement.
func (g *Game) roll(p *models.Player) {
	d := throw(g.rng)
	g.turn.LastRoll = d
	g.turn.HasRolled = true
	g.bus.Publish(events.PlayerRolled, events.RollPayload{PlayerID: p.ID, Die1: d[0], Die2: d[1], Double: d.Double()})

	if p.InJail {
		p.JailTurns++
		switch {
		case p.JailTurns >= g.rules.MaxJailTurns:
			g.payBank(p, g.rules.JailFine)
			g.release(p, "paid fine after max jail turns")
		case d.Double():
			g.release(p, "rolled doubles")
		default:
			return
		}
		g.advance(p, d.Total(), 0)
		return
	}

	if d.Double() {
		g.turn.ConsecutiveDoubles++
		if g.turn.ConsecutiveDoubles >= g.rules.MaxDoubles {
			g.jail(p, "rolled too many doubles")
			return
		}
	}
	g.advance(p, d.Total(), 0)
}

func (g *Game) payJailFine(p *models.Player) error {
	if !p.InJail {
		return moveErr(models.ActionPayJailFine, "not in jail")
	}
	if p.Money < g.rules.JailFine {
		return moveErr(models.ActionPayJailFine, "cannot afford fine of %d", g.rules.JailFine)
	}
	g.payBank(p, g.rules.JailFine)
	g.release(p, "paid fine")
	return nil
}

func (g *Game) useJailCard(p *models.Player) error {
	if !p.InJail {
		return moveErr(models.ActionUseJailCard, "not in jail")
	}
	if len(p.JailCards) == 0 {
		return moveErr(models.ActionUseJailCard, "no card held")
	}
	card := p.JailCards[0]
	p.JailCards = p.JailCards[1:]
	g.decks.For(card.Deck).Return(card)
	g.release(p, "used card")
	return nil
}
