package engine

import "github.com/DedS3t/monopoly-engine/app/models"

// Debt is a payment that could not be met. A nil creditor is the bank.
type Debt struct {
	CreditorID *int `json:"creditor_id,omitempty"`
	Amount     int  `json:"amount"`
}

// TurnState is reset at every turn boundary.
type TurnState struct {
	HasRolled          bool         `json:"has_rolled"`
	ConsecutiveDoubles int          `json:"consecutive_doubles"`
	LastRoll           Dice         `json:"last_roll"`
	ReleasedFromJail   bool         `json:"released_from_jail"`
	AuctionRequested   bool         `json:"auction_requested"`
	LastCard           *models.Card `json:"last_card,omitempty"`
	// Debts are the turn player's outstanding payments.
	Debts []Debt `json:"debts,omitempty"`
}

// OutstandingRent sums the turn player's debts.
func (t TurnState) OutstandingRent() int {
	return sumDebts(t.Debts)
}

func sumDebts(debts []Debt) int {
	total := 0
	for _, d := range debts {
		total += d.Amount
	}
	return total
}

// AuctionState exists only while the BUY tile is being auctioned.
type AuctionState struct {
	TileID        int  `json:"tile_id"`
	CurrentPrice  int  `json:"current_price"`
	CurrentBidder int  `json:"current_bidder"`
	LastBidder    *int `json:"last_bidder,omitempty"`
	AbstainStreak int  `json:"abstain_streak"`
	Over          bool `json:"over"`
	Sold          bool `json:"sold"`
}

// Snapshot is a JSON view of a session for clients and caches.
type Snapshot struct {
	State           models.GameState   `json:"state"`
	Phase           models.TurnPhase   `json:"phase"`
	Turn            int                `json:"turn"`
	CurrentPlayer   int                `json:"current_player"`
	Players         []models.Player    `json:"players"`
	Tiles           []models.TileState `json:"tiles"`
	TurnState       TurnState          `json:"turn_state"`
	Auction         *AuctionState      `json:"auction,omitempty"`
	Debts           map[int][]Debt     `json:"debts,omitempty"`
	HousesAvailable int                `json:"houses_available"`
	HotelsAvailable int                `json:"hotels_available"`
	BankFlow        int                `json:"bank_flow"`
	WinnerID        *int               `json:"winner_id,omitempty"`
}
