package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DedS3t/monopoly-engine/app/models"
)

//go:embed properties.json
var defaultProperties []byte

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrNotFound     = errors.New("not found")
)

// Board is the immutable, ordered tile registry.
type Board struct {
	tiles  []models.Tile
	byCode map[string]int
	groups map[models.Color][]int
}

// LoadProperties reads a board from path, or the bundled UK board when path
// is empty.
func LoadProperties(path string) (*Board, error) {
	data := defaultProperties
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read board %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Default returns the bundled board. The data is compiled in, so a failure
// here is a build defect.
func Default() *Board {
	b, err := Parse(defaultProperties)
	if err != nil {
		panic(err)
	}
	return b
}

func Parse(data []byte) (*Board, error) {
	var tiles []models.Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return New(tiles)
}

// New validates tiles and assigns each its position as ID.
func New(tiles []models.Tile) (*Board, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidBoard)
	}
	if tiles[0].Kind != models.KindGo {
		return nil, fmt.Errorf("%w: the first tile is not GO", ErrInvalidBoard)
	}

	b := &Board{
		tiles:  make([]models.Tile, len(tiles)),
		byCode: make(map[string]int, len(tiles)),
		groups: make(map[models.Color][]int),
	}
	jails := 0
	for pos, tile := range tiles {
		tile.ID = pos
		tile.Rent = append([]int(nil), tile.Rent...)
		if err := validateTile(tile); err != nil {
			return nil, err
		}
		if tile.Code != "" {
			if _, dup := b.byCode[tile.Code]; dup {
				return nil, fmt.Errorf("%w: duplicate tile code %q", ErrInvalidBoard, tile.Code)
			}
			b.byCode[tile.Code] = pos
		}
		if tile.Kind == models.KindJail {
			jails++
		}
		if tile.Kind == models.KindProperty {
			b.groups[tile.Color] = append(b.groups[tile.Color], pos)
		}
		b.tiles[pos] = tile
	}
	if jails != 1 {
		return nil, fmt.Errorf("%w: expected exactly one JAIL tile, found %d", ErrInvalidBoard, jails)
	}
	return b, nil
}

func validateTile(t models.Tile) error {
	switch t.Kind {
	case models.KindProperty:
		if t.Color == models.NoColor {
			return fmt.Errorf("%w: property %q has no color", ErrInvalidBoard, t.Name)
		}
		if len(t.Rent) != models.Hotel+1 {
			return fmt.Errorf("%w: property %q needs %d rent levels", ErrInvalidBoard, t.Name, models.Hotel+1)
		}
		if t.HouseCost <= 0 {
			return fmt.Errorf("%w: property %q has no house cost", ErrInvalidBoard, t.Name)
		}
	case models.KindRailroad:
		if len(t.Rent) != 4 {
			return fmt.Errorf("%w: railroad %q needs 4 rent levels", ErrInvalidBoard, t.Name)
		}
	}
	if t.Kind.Buyable() && (t.Price <= 0 || t.MortgageValue <= 0) {
		return fmt.Errorf("%w: %q needs a price and a mortgage value", ErrInvalidBoard, t.Name)
	}
	if !t.Kind.Buyable() && t.Price != 0 {
		return fmt.Errorf("%w: %s tile %q cannot have a price", ErrInvalidBoard, t.Kind, t.Name)
	}
	return nil
}

func (b *Board) Len() int {
	return len(b.tiles)
}

// Tiles returns a copy of the ordered tile list.
func (b *Board) Tiles() []models.Tile {
	out := make([]models.Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

func (b *Board) GetByPos(pos int) (models.Tile, error) {
	if pos < 0 || pos >= len(b.tiles) {
		return models.Tile{}, fmt.Errorf("tile %d: %w", pos, ErrNotFound)
	}
	return b.tiles[pos], nil
}

// MustGet is GetByPos for ids the caller already validated.
func (b *Board) MustGet(pos int) models.Tile {
	t, err := b.GetByPos(pos)
	if err != nil {
		panic(err)
	}
	return t
}

func (b *Board) GetByCode(code string) (models.Tile, error) {
	pos, ok := b.byCode[code]
	if !ok {
		return models.Tile{}, fmt.Errorf("tile %q: %w", code, ErrNotFound)
	}
	return b.tiles[pos], nil
}

// OfKind lists tiles of one kind in board order.
func (b *Board) OfKind(kind models.TileKind) []models.Tile {
	var out []models.Tile
	for _, t := range b.tiles {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// FirstOfKind returns the first tile of a kind in board order.
func (b *Board) FirstOfKind(kind models.TileKind) (models.Tile, error) {
	for _, t := range b.tiles {
		if t.Kind == kind {
			return t, nil
		}
	}
	return models.Tile{}, fmt.Errorf("%s tile: %w", kind, ErrNotFound)
}

// Group returns the tile ids of a color group.
func (b *Board) Group(color models.Color) []int {
	return append([]int(nil), b.groups[color]...)
}

// Distance is the number of forward steps from one position to another.
func (b *Board) Distance(from, to int) int {
	n := len(b.tiles)
	return ((to-from)%n + n) % n
}
