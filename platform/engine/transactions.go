package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// credit pays amount from the bank to the player.
func (g *Game) credit(p *models.Player, amount int) {
	p.Money += amount
	g.bankFlow += amount
}

// payBank charges the player. It records a debt to the bank and reports
// false when the player cannot pay in full.
func (g *Game) payBank(p *models.Player, amount int) bool {
	if amount <= 0 {
		return true
	}
	if p.Money < amount {
		g.addDebt(p, nil, amount)
		return false
	}
	p.Money -= amount
	g.bankFlow -= amount
	return true
}

// transfer moves money between players. It records a debt and reports false
// when the payer cannot pay in full.
func (g *Game) transfer(from, to *models.Player, amount int) bool {
	if amount <= 0 {
		return true
	}
	if from.Money < amount {
		id := to.ID
		g.addDebt(from, &id, amount)
		return false
	}
	from.Money -= amount
	to.Money += amount
	return true
}

func (g *Game) addDebt(p *models.Player, creditor *int, amount int) {
	g.debts[p.ID] = append(g.debts[p.ID], Debt{CreditorID: creditor, Amount: amount})
	g.log.WithFields(logrus.Fields{"player": p.Name, "amount": amount}).Debug("debt recorded")
	g.bus.Publish(events.PlayerInDebt, events.DebtPayload{PlayerID: p.ID, CreditorID: creditor, Amount: amount})
}

func (g *Game) ownedTile(action models.Action, playerID, tileID int) (models.Tile, *models.TileState, error) {
	tile, err := g.board.GetByPos(tileID)
	if err != nil {
		return models.Tile{}, nil, fmt.Errorf("tile %d: %w", tileID, ErrNotFound)
	}
	s := &g.tiles[tileID]
	if !s.OwnedBy(playerID) {
		return tile, s, moveErr(action, "%s is not owned by player %d", tile.Name, playerID)
	}
	return tile, s, nil
}

// Buy transfers an unowned tile from the bank at price.
func (g *Game) Buy(playerID, tileID, price int) error {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return err
	}
	tile, err := g.board.GetByPos(tileID)
	if err != nil {
		return fmt.Errorf("tile %d: %w", tileID, ErrNotFound)
	}
	s := &g.tiles[tileID]
	switch {
	case !tile.Kind.Buyable():
		return moveErr(models.ActionBuy, "%s cannot be bought", tile.Name)
	case s.OwnerID != nil:
		return moveErr(models.ActionBuy, "%s is already owned", tile.Name)
	case price < 0:
		return moveErr(models.ActionBuy, "negative price")
	case p.Money < price:
		return moveErr(models.ActionBuy, "%s costs %d, player has %d", tile.Name, price, p.Money)
	}
	p.Money -= price
	g.bankFlow -= price
	owner := p.ID
	s.OwnerID = &owner
	g.log.WithFields(logrus.Fields{"player": p.Name, "tile": tile.Name, "price": price}).Debug("bought")
	g.bus.Publish(events.PlayerBoughtTile, events.BoughtPayload{PlayerID: p.ID, TileID: tileID, Price: price})
	return nil
}

func (g *Game) checkMortgage(playerID, tileID int) error {
	tile, s, err := g.ownedTile(models.ActionMortgage, playerID, tileID)
	if err != nil {
		return err
	}
	if s.Mortgaged {
		return moveErr(models.ActionMortgage, "%s is already mortgaged", tile.Name)
	}
	if tile.Kind == models.KindProperty && g.groupBuilt(tile.Color) {
		return moveErr(models.ActionMortgage, "%s group carries buildings", tile.Color)
	}
	return nil
}

// Mortgage pays the mortgage value of an owned, unbuilt tile.
func (g *Game) Mortgage(playerID, tileID int) error {
	if err := g.checkMortgage(playerID, tileID); err != nil {
		return err
	}
	tile := g.board.MustGet(tileID)
	g.tiles[tileID].Mortgaged = true
	g.credit(g.players[playerID], tile.MortgageValue)
	return nil
}

func (g *Game) checkUnmortgage(playerID, tileID int) error {
	tile, s, err := g.ownedTile(models.ActionUnmortgage, playerID, tileID)
	if err != nil {
		return err
	}
	if !s.Mortgaged {
		return moveErr(models.ActionUnmortgage, "%s is not mortgaged", tile.Name)
	}
	if cost := g.rules.unmortgageCost(tile.MortgageValue); g.players[playerID].Money < cost {
		return moveErr(models.ActionUnmortgage, "lifting the mortgage costs %d", cost)
	}
	return nil
}

// Unmortgage repays the mortgage value plus interest.
func (g *Game) Unmortgage(playerID, tileID int) error {
	if err := g.checkUnmortgage(playerID, tileID); err != nil {
		return err
	}
	tile := g.board.MustGet(tileID)
	g.tiles[tileID].Mortgaged = false
	g.payBank(g.players[playerID], g.rules.unmortgageCost(tile.MortgageValue))
	return nil
}

// groupLevels returns the lowest and highest development levels in a group.
func (g *Game) groupLevels(color models.Color) (low, high int) {
	low = models.Hotel
	for _, id := range g.board.Group(color) {
		l := g.tiles[id].Level()
		if l < low {
			low = l
		}
		if l > high {
			high = l
		}
	}
	return low, high
}

func (g *Game) groupBuilt(color models.Color) bool {
	_, high := g.groupLevels(color)
	return high > 0
}

func (g *Game) checkGroup(action models.Action, playerID int, tile models.Tile) error {
	if !tile.Kind.Developable() {
		return moveErr(action, "%s cannot be developed", tile.Name)
	}
	if !g.ownsGroup(playerID, tile.Color) {
		return moveErr(action, "player %d does not hold the %s group", playerID, tile.Color)
	}
	for _, id := range g.board.Group(tile.Color) {
		if g.tiles[id].Mortgaged {
			return moveErr(action, "%s group has a mortgaged tile", tile.Color)
		}
	}
	return nil
}

func (g *Game) checkDevelop(playerID, tileID int) error {
	tile, s, err := g.ownedTile(models.ActionDevelop, playerID, tileID)
	if err != nil {
		return err
	}
	if err := g.checkGroup(models.ActionDevelop, playerID, tile); err != nil {
		return err
	}
	level := s.Level()
	low, _ := g.groupLevels(tile.Color)
	switch {
	case level >= models.Hotel:
		return moveErr(models.ActionDevelop, "%s already has a hotel", tile.Name)
	case level > low:
		return moveErr(models.ActionDevelop, "%s must be developed evenly", tile.Color)
	case g.players[playerID].Money < tile.HouseCost:
		return moveErr(models.ActionDevelop, "building on %s costs %d", tile.Name, tile.HouseCost)
	case level == models.Hotel-1 && g.hotels == 0:
		return moveErr(models.ActionDevelop, "no hotels left")
	case level < models.Hotel-1 && g.houses == 0:
		return moveErr(models.ActionDevelop, "no houses left")
	}
	return nil
}

// Develop builds one level on a tile. The fifth level is a hotel, which
// returns its four houses to the pool.
func (g *Game) Develop(playerID, tileID int) error {
	if err := g.checkDevelop(playerID, tileID); err != nil {
		return err
	}
	tile := g.board.MustGet(tileID)
	s := &g.tiles[tileID]
	if s.Houses == models.Hotel-1 {
		s.Hotel = true
		g.hotels--
		g.houses += models.Hotel - 1
	} else {
		s.Houses++
		g.houses--
	}
	g.payBank(g.players[playerID], tile.HouseCost)
	return nil
}

func (g *Game) checkSell(playerID, tileID int) error {
	tile, s, err := g.ownedTile(models.ActionSell, playerID, tileID)
	if err != nil {
		return err
	}
	if !tile.Kind.Developable() {
		return moveErr(models.ActionSell, "%s carries no buildings", tile.Name)
	}
	level := s.Level()
	_, high := g.groupLevels(tile.Color)
	switch {
	case level == 0:
		return moveErr(models.ActionSell, "%s carries no buildings", tile.Name)
	case level < high:
		return moveErr(models.ActionSell, "%s must be sold evenly", tile.Color)
	case s.Hotel && g.houses < models.Hotel-1:
		return moveErr(models.ActionSell, "not enough houses to replace the hotel")
	}
	return nil
}

// Sell removes one level from a tile and refunds part of the house cost.
func (g *Game) Sell(playerID, tileID int) error {
	if err := g.checkSell(playerID, tileID); err != nil {
		return err
	}
	tile := g.board.MustGet(tileID)
	s := &g.tiles[tileID]
	if s.Hotel {
		s.Hotel = false
		g.hotels++
		g.houses -= models.Hotel - 1
	} else {
		s.Houses--
		g.houses++
	}
	g.credit(g.players[playerID], tile.HouseCost*g.rules.SaleRefund/100)
	return nil
}

// PayDebt settles every outstanding debt of the player at once.
func (g *Game) PayDebt(playerID int) error {
	p, err := g.activePlayer(playerID)
	if err != nil {
		return err
	}
	debts := g.debts[playerID]
	if len(debts) == 0 {
		return moveErr(models.ActionPayDebt, "no outstanding debt")
	}
	if total := sumDebts(debts); p.Money < total {
		return moveErr(models.ActionPayDebt, "owes %d, has %d", total, p.Money)
	}
	for _, d := range debts {
		g.settle(p, d.CreditorID, d.Amount)
	}
	delete(g.debts, playerID)
	return nil
}

// settle pays up to amount to a creditor. Debts to forfeited players go to
// the bank.
func (g *Game) settle(p *models.Player, creditor *int, amount int) {
	if amount > p.Money {
		amount = p.Money
	}
	p.Money -= amount
	if creditor != nil && !g.players[*creditor].Forfeited {
		g.players[*creditor].Money += amount
		return
	}
	g.bankFlow -= amount
}

// Forfeit removes a player from rotation. Cash goes to creditors in order,
// the rest to the bank; tiles return to the bank unmortgaged and unbuilt.
func (g *Game) Forfeit(playerID int) error {
	if g.state != models.StateRunning {
		return fmt.Errorf("%w: forfeit in %s", ErrInvalidState, g.state)
	}
	p, err := g.activePlayer(playerID)
	if err != nil {
		return err
	}
	for _, d := range g.debts[playerID] {
		g.settle(p, d.CreditorID, d.Amount)
	}
	delete(g.debts, playerID)
	g.bankFlow -= p.Money
	p.Money = 0

	for _, id := range g.OwnedTiles(playerID) {
		s := &g.tiles[id]
		if s.Hotel {
			g.hotels++
		} else {
			g.houses += s.Houses
		}
		*s = models.TileState{}
	}
	for _, card := range p.JailCards {
		g.decks.For(card.Deck).Return(card)
	}
	p.JailCards = nil
	p.InJail = false
	p.JailTurns = 0
	p.Forfeited = true
	g.log.WithField("player", p.Name).Info("player forfeited")
	g.bus.Publish(events.PlayerForfeited, events.ForfeitPayload{PlayerID: p.ID})

	if g.ActivePlayers() <= 1 {
		g.end()
	}
	return nil
}

func (g *Game) end() {
	for _, p := range g.players {
		if !p.Forfeited {
			id := p.ID
			g.winner = &id
			break
		}
	}
	g.state = models.StateOver
	g.auction = nil
	g.log.WithField("winner", g.winner).Info("game over")
	g.bus.Publish(events.GameEnded, events.GamePayload{State: g.state, WinnerID: g.winner})
}
