package models

import (
	"encoding/json"
	"fmt"
)

// DeckKind identifies one of the two card decks.
type DeckKind int

const (
	ChanceDeck DeckKind = iota
	CommunityChestDeck
)

func (d DeckKind) String() string {
	switch d {
	case ChanceDeck:
		return "CHANCE"
	case CommunityChestDeck:
		return "COMMUNITY_CHEST"
	}
	return fmt.Sprintf("DECK_%d", int(d))
}

func (d DeckKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DeckKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "CHANCE":
		*d = ChanceDeck
	case "COMMUNITY_CHEST":
		*d = CommunityChestDeck
	default:
		return fmt.Errorf("unknown deck %q", s)
	}
	return nil
}

// EffectOp is the closed set of card effect operations.
type EffectOp string

const (
	OpCollect         EffectOp = "collect"
	OpPay             EffectOp = "pay"
	OpCollectFromEach EffectOp = "collect_from_each"
	OpPayEach         EffectOp = "pay_each"
	OpAdvanceTo       EffectOp = "advance_to"
	OpTeleport        EffectOp = "teleport"
	OpCollectGo       EffectOp = "collect_go"
	OpMove            EffectOp = "move"
	OpAdvanceNearest  EffectOp = "advance_nearest"
	OpJail            EffectOp = "jail"
	OpJailFree        EffectOp = "jail_free"
	OpRepairs         EffectOp = "repairs"
)

var knownOps = map[EffectOp]bool{
	OpCollect: true, OpPay: true, OpCollectFromEach: true, OpPayEach: true,
	OpAdvanceTo: true, OpTeleport: true, OpCollectGo: true, OpMove: true,
	OpAdvanceNearest: true, OpJail: true, OpJailFree: true, OpRepairs: true,
}

// Known reports whether the op is one the engine interprets.
func (o EffectOp) Known() bool {
	return knownOps[o]
}

// Effect is one step of a card effect. Only the fields its op reads are set.
type Effect struct {
	Op         EffectOp `json:"op"`
	Amount     int      `json:"amount,omitempty"`
	Tile       string   `json:"tile,omitempty"`
	Kind       TileKind `json:"kind,omitempty"`
	Spaces     int      `json:"spaces,omitempty"`
	Multiplier int      `json:"multiplier,omitempty"`
	House      int      `json:"house,omitempty"`
	HotelCost  int      `json:"hotel,omitempty"`
}

// Card is a chance or community chest card.
type Card struct {
	Deck     DeckKind `json:"deck"`
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Text     string   `json:"text"`
	Keepable bool     `json:"keepable,omitempty"`
	Effects  []Effect `json:"effects"`
}
