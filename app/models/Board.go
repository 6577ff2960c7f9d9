package models

import (
	"encoding/json"
	"fmt"
)

// TileKind is the closed set of board tile kinds.
type TileKind int

const (
	KindGo TileKind = iota
	KindJail
	KindGoToJail
	KindFreeParking
	KindIncomeTax
	KindSuperTax
	KindChance
	KindCommunityChest
	KindProperty
	KindRailroad
	KindUtility
)

var tileKindNames = map[TileKind]string{
	KindGo:             "GO",
	KindJail:           "JAIL",
	KindGoToJail:       "GO_TO_JAIL",
	KindFreeParking:    "FREE_PARKING",
	KindIncomeTax:      "INCOME_TAX",
	KindSuperTax:       "SUPER_TAX",
	KindChance:         "CHANCE",
	KindCommunityChest: "COMMUNITY_CHEST",
	KindProperty:       "PROPERTY",
	KindRailroad:       "RAILROAD",
	KindUtility:        "UTILITY",
}

func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// ParseTileKind maps a kind name back to its value.
func ParseTileKind(s string) (TileKind, error) {
	for kind, name := range tileKindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown tile kind %q", s)
}

func (k TileKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TileKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseTileKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Buyable reports whether tiles of this kind can be owned.
func (k TileKind) Buyable() bool {
	return k == KindProperty || k == KindRailroad || k == KindUtility
}

// Developable reports whether houses and hotels can be built on this kind.
func (k TileKind) Developable() bool {
	return k == KindProperty
}

// Color is a property color group. The zero value means no group.
type Color string

const (
	NoColor   Color = ""
	Brown     Color = "BROWN"
	LightBlue Color = "LIGHT_BLUE"
	Purple    Color = "PURPLE"
	Orange    Color = "ORANGE"
	Red       Color = "RED"
	Yellow    Color = "YELLOW"
	Green     Color = "GREEN"
	DarkBlue  Color = "DARK_BLUE"
)

// Hotel is the development level of a tile carrying a hotel.
const Hotel = 5

// Tile is the immutable template of one board position.
type Tile struct {
	ID            int      `json:"id"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Kind          TileKind `json:"kind"`
	Color         Color    `json:"color,omitempty"`
	Price         int      `json:"price,omitempty"`
	MortgageValue int      `json:"mortgage,omitempty"`
	HouseCost     int      `json:"housecost,omitempty"`
	// Rent is indexed by development level (0-4 houses, 5 hotel) for
	// properties and by railroads held minus one for railroads.
	Rent []int `json:"rent,omitempty"`
}

// TileState is the mutable state paired 1:1 with a Tile.
type TileState struct {
	OwnerID   *int `json:"owner_id"`
	Mortgaged bool `json:"mortgaged"`
	Houses    int  `json:"houses"`
	Hotel     bool `json:"hotel"`
}

// Level returns 0-4 for houses and Hotel when a hotel stands on the tile.
func (s TileState) Level() int {
	if s.Hotel {
		return Hotel
	}
	return s.Houses
}

// OwnedBy reports whether playerID owns the tile.
func (s TileState) OwnedBy(playerID int) bool {
	return s.OwnerID != nil && *s.OwnerID == playerID
}
