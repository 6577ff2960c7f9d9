package engine

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// startAuction opens bidding on tileID. The triggering player bids first.
func (g *Game) startAuction(trigger *models.Player, tileID int) {
	g.auction = &AuctionState{TileID: tileID, CurrentBidder: trigger.ID}
	g.bus.Publish(events.AuctionStarted, events.AuctionPayload{TileID: tileID})
}

func (g *Game) bid(p *models.Player) error {
	a := g.auction
	if a == nil || a.Over {
		return moveErr(models.ActionBid, "no auction running")
	}
	if a.CurrentBidder != p.ID {
		return moveErr(models.ActionBid, "not player %d's bid", p.ID)
	}
	price := a.CurrentPrice + g.rules.AuctionIncrement
	if p.Money < price {
		return moveErr(models.ActionBid, "cannot afford %d", price)
	}
	id := p.ID
	a.CurrentPrice = price
	a.LastBidder = &id
	a.AbstainStreak = 0
	g.bus.Publish(events.AuctionBid, events.AuctionPayload{TileID: a.TileID, BidderID: &id, Price: price})
	a.CurrentBidder = g.nextActive(a.CurrentBidder)
	return nil
}

// abstain passes the bid. After a bid, every other player abstaining in a
// row sells the tile; with no bid, a full round of abstains ends unsold.
func (g *Game) abstain(p *models.Player) error {
	a := g.auction
	if a == nil || a.Over {
		return moveErr(models.ActionAbstain, "no auction running")
	}
	if a.CurrentBidder != p.ID {
		return moveErr(models.ActionAbstain, "not player %d's bid", p.ID)
	}
	a.AbstainStreak++
	bidders := g.ActivePlayers()

	switch {
	case a.LastBidder != nil && a.AbstainStreak >= bidders-1:
		if err := g.Buy(*a.LastBidder, a.TileID, a.CurrentPrice); err != nil {
			return err
		}
		a.Over, a.Sold = true, true
	case a.LastBidder == nil && a.AbstainStreak >= bidders:
		a.Over = true
	default:
		a.CurrentBidder = g.nextActive(a.CurrentBidder)
		return nil
	}
	g.log.WithFields(logrus.Fields{"tile": a.TileID, "price": a.CurrentPrice, "sold": a.Sold}).Debug("auction ended")
	g.bus.Publish(events.AuctionEnded, events.AuctionPayload{TileID: a.TileID, BidderID: a.LastBidder, Price: a.CurrentPrice, Sold: a.Sold})
	return nil
}
