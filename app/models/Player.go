package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Controller says who decides a player's actions.
type Controller int

const (
	Human Controller = iota
	AI
)

func (c Controller) String() string {
	switch c {
	case Human:
		return "HUMAN"
	case AI:
		return "AI"
	}
	return fmt.Sprintf("CONTROLLER_%d", int(c))
}

func (c Controller) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Controller) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "HUMAN", "":
		*c = Human
	case "AI":
		*c = AI
	default:
		return fmt.Errorf("unknown controller %q", s)
	}
	return nil
}

// PlayerSpec is the construction input for one seat.
type PlayerSpec struct {
	Name       string     `json:"name"`
	Controller Controller `json:"controller"`
	Level      string     `json:"level,omitempty"`
}

// Player is the per-player ledger. Owned tiles are derived from the board
// state and never stored here.
type Player struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Controller Controller `json:"controller"`
	Level      string     `json:"level,omitempty"`
	Money      int        `json:"money"`
	TileID     int        `json:"tile_id"`
	InJail     bool       `json:"in_jail"`
	JailTurns  int        `json:"jail_turns"`
	JailCards  []Card     `json:"jail_cards,omitempty"`
	Forfeited  bool       `json:"forfeited"`
}

// JailCardCount is the number of held get-out-of-jail cards.
func (p *Player) JailCardCount() int {
	return len(p.JailCards)
}

// PlayerDto is the client view of a player.
type PlayerDto struct {
	Id         int    `json:"id"`
	Username   string `json:"username"`
	Controller string `json:"controller"`
	Balance    int    `json:"balance"`
	Pos        int    `json:"pos"`
	Properties []int  `json:"properties"`
	Jail       bool   `json:"jail"`
	JailCards  int    `json:"jail_cards"`
	Forfeited  bool   `json:"forfeited"`
}
