package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// GameState is the lifecycle of a session.
type GameState int

const (
	StateInit GameState = iota
	StateReady
	StateRunning
	StateOver
)

var gameStateNames = map[GameState]string{
	StateInit:    "INIT",
	StateReady:   "READY",
	StateRunning: "RUNNING",
	StateOver:    "OVER",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

func (s GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// TurnPhase is one step of a player's turn.
type TurnPhase int

const (
	PhasePreRoll TurnPhase = iota
	PhaseRoll
	PhaseBuy
	PhaseAuction
	PhasePostRoll
)

var phaseNames = map[TurnPhase]string{
	PhasePreRoll:  "PRE_ROLL",
	PhaseRoll:     "ROLL",
	PhaseBuy:      "BUY",
	PhaseAuction:  "AUCTION",
	PhasePostRoll: "POST_ROLL",
}

func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

func (p TurnPhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Action is something a player can do.
type Action int

const (
	ActionNextPhase Action = iota
	ActionRoll
	ActionPayJailFine
	ActionUseJailCard
	ActionMortgage
	ActionUnmortgage
	ActionDevelop
	ActionSell
	ActionBuy
	ActionAuction
	ActionBid
	ActionAbstain
	ActionPayDebt
	ActionForfeit
)

var actionNames = map[Action]string{
	ActionNextPhase:   "NEXT_PHASE",
	ActionRoll:        "ROLL",
	ActionPayJailFine: "PAY_JAIL_FINE",
	ActionUseJailCard: "USE_JAIL_CARD",
	ActionMortgage:    "MORTGAGE",
	ActionUnmortgage:  "UNMORTGAGE",
	ActionDevelop:     "DEVELOP",
	ActionSell:        "SELL",
	ActionBuy:         "BUY",
	ActionAuction:     "AUCTION",
	ActionBid:         "BID",
	ActionAbstain:     "ABSTAIN",
	ActionPayDebt:     "PAY_DEBT",
	ActionForfeit:     "FORFEIT",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(a))
}

// ParseAction maps an action name back to its value.
func ParseAction(s string) (Action, error) {
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	action, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// NeedsTile reports whether the action targets a specific tile.
func (a Action) NeedsTile() bool {
	switch a {
	case ActionMortgage, ActionUnmortgage, ActionDevelop, ActionSell:
		return true
	}
	return false
}

// Game is the persisted record of a session.
type Game struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Players   int       `json:"players"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at" pg:"default:now()"`
}

const (
	GameStatusOpen       = "open"
	GameStatusInProgress = "in progress"
	GameStatusOver       = "over"
)

type GameCreateDto struct {
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	Players      []PlayerSpec `json:"players"`
	ShuffleDecks *bool        `json:"shuffle_decks"`
	RollForOrder bool         `json:"roll_for_order"`
	Seed         int64        `json:"seed"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}

type StepDto struct {
	PlayerId *int   `json:"player_id"`
	Action   string `json:"action"`
	TileId   *int   `json:"tile_id"`
}

type RunDto struct {
	Turns int `json:"turns"`
}
