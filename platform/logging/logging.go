package logging

import (
	"os"

	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// Init configures the standard logger from cfg.
func Init(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// EventLogger logs every event published on bus and returns the handle to
// unsubscribe with.
func EventLogger(bus *events.Bus, log logrus.FieldLogger) int {
	return bus.SubscribeAll(func(e events.Event) {
		entry := log.WithFields(logrus.Fields{
			"event": e.Type.String(),
			"seq":   e.Seq,
		})
		for k, v := range fields(e.Payload) {
			entry = entry.WithField(k, v)
		}
		switch e.Type {
		case events.GameEnded, events.PlayerForfeited, events.PlayerInDebt:
			entry.Info("game event")
		default:
			entry.Debug("game event")
		}
	})
}

func fields(payload interface{}) logrus.Fields {
	switch p := payload.(type) {
	case events.TurnPayload:
		return logrus.Fields{"player": p.PlayerID, "turn": p.Turn}
	case events.PhasePayload:
		return logrus.Fields{"player": p.PlayerID, "phase": p.Phase.String()}
	case events.ActionPayload:
		f := logrus.Fields{"player": p.PlayerID, "action": p.Action.String()}
		if p.TileID != nil {
			f["tile"] = *p.TileID
		}
		return f
	case events.AdvancePayload:
		return logrus.Fields{"player": p.PlayerID, "from": p.From, "to": p.To}
	case events.RollPayload:
		return logrus.Fields{"player": p.PlayerID, "die1": p.Die1, "die2": p.Die2}
	case events.RentPayload:
		return logrus.Fields{"player": p.PlayerID, "owner": p.OwnerID, "tile": p.TileID, "amount": p.Amount}
	case events.TaxPayload:
		return logrus.Fields{"player": p.PlayerID, "tile": p.TileID, "amount": p.Amount}
	case events.BoughtPayload:
		return logrus.Fields{"player": p.PlayerID, "tile": p.TileID, "price": p.Price}
	case events.DebtPayload:
		return logrus.Fields{"player": p.PlayerID, "amount": p.Amount}
	case events.CardPayload:
		return logrus.Fields{"player": p.PlayerID, "deck": p.Deck, "card": p.Code}
	case events.JailPayload:
		return logrus.Fields{"player": p.PlayerID, "reason": p.Reason}
	case events.PassedGoPayload:
		return logrus.Fields{"player": p.PlayerID, "amount": p.Amount}
	case events.ForfeitPayload:
		return logrus.Fields{"player": p.PlayerID}
	case events.AuctionPayload:
		f := logrus.Fields{"tile": p.TileID, "price": p.Price, "sold": p.Sold}
		if p.BidderID != nil {
			f["bidder"] = *p.BidderID
		}
		return f
	case events.GamePayload:
		f := logrus.Fields{"state": p.State.String()}
		if p.WinnerID != nil {
			f["winner"] = *p.WinnerID
		}
		return f
	}
	return nil
}
