package events

import "github.com/DedS3t/monopoly-engine/app/models"

// GamePayload accompanies GAME_READY, GAME_STARTED and GAME_ENDED.
type GamePayload struct {
	State    models.GameState `json:"state"`
	WinnerID *int             `json:"winner_id,omitempty"`
}

// TurnPayload accompanies TURN_STARTED and TURN_ENDED.
type TurnPayload struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Turn     int    `json:"turn"`
}

// PhasePayload accompanies PHASE_STARTED and PHASE_ENDED.
type PhasePayload struct {
	PlayerID int              `json:"player_id"`
	Phase    models.TurnPhase `json:"phase"`
}

// ActionPayload accompanies PLAYER_ACTION.
type ActionPayload struct {
	PlayerID int              `json:"player_id"`
	Phase    models.TurnPhase `json:"phase"`
	Action   models.Action    `json:"action"`
	TileID   *int             `json:"tile_id,omitempty"`
}

// AdvancePayload accompanies PLAYER_ADVANCE.
type AdvancePayload struct {
	PlayerID int  `json:"player_id"`
	From     int  `json:"from"`
	To       int  `json:"to"`
	Delta    int  `json:"delta"`
	Teleport bool `json:"teleport"`
}

// JailPayload accompanies PLAYER_IN_JAIL and PLAYER_OUT_OF_JAIL.
type JailPayload struct {
	PlayerID int    `json:"player_id"`
	Reason   string `json:"reason"`
}

// RentPayload accompanies PLAYER_PAID_RENT.
type RentPayload struct {
	PlayerID int `json:"player_id"`
	OwnerID  int `json:"owner_id"`
	TileID   int `json:"tile_id"`
	Amount   int `json:"amount"`
}

// TaxPayload accompanies PLAYER_PAID_TAX.
type TaxPayload struct {
	PlayerID int `json:"player_id"`
	TileID   int `json:"tile_id"`
	Amount   int `json:"amount"`
}

// PassedGoPayload accompanies PLAYER_PASSED_GO.
type PassedGoPayload struct {
	PlayerID int `json:"player_id"`
	Amount   int `json:"amount"`
}

// CardPayload accompanies PLAYER_DREW_CARD.
type CardPayload struct {
	PlayerID int             `json:"player_id"`
	Deck     models.DeckKind `json:"deck"`
	Code     string          `json:"code"`
	Text     string          `json:"text"`
}

// RollPayload accompanies PLAYER_ROLLED.
type RollPayload struct {
	PlayerID int  `json:"player_id"`
	Die1     int  `json:"die1"`
	Die2     int  `json:"die2"`
	Double   bool `json:"double"`
}

// BoughtPayload accompanies PLAYER_BOUGHT_TILE.
type BoughtPayload struct {
	PlayerID int `json:"player_id"`
	TileID   int `json:"tile_id"`
	Price    int `json:"price"`
}

// DebtPayload accompanies PLAYER_IN_DEBT. A nil creditor is the bank.
type DebtPayload struct {
	PlayerID   int  `json:"player_id"`
	CreditorID *int `json:"creditor_id,omitempty"`
	Amount     int  `json:"amount"`
}

// ForfeitPayload accompanies PLAYER_FORFEITED.
type ForfeitPayload struct {
	PlayerID int `json:"player_id"`
}

// AuctionPayload accompanies AUCTION_STARTED, AUCTION_BID and AUCTION_ENDED.
type AuctionPayload struct {
	TileID   int  `json:"tile_id"`
	BidderID *int `json:"bidder_id,omitempty"`
	Price    int  `json:"price"`
	Sold     bool `json:"sold"`
}
