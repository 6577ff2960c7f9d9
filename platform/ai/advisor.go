package ai

import (
	"fmt"
	"strings"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

// Level names a strategy.
type Level string

const (
	LevelNonsensical Level = "NONSENSICAL"
	LevelBasic       Level = "BASIC"
)

// NewAdvisor creates the advisor for a level. An empty level is NONSENSICAL.
func NewAdvisor(level string) (engine.Advisor, error) {
	switch Level(strings.ToUpper(level)) {
	case LevelNonsensical, "":
		return Nonsensical{}, nil
	case LevelBasic:
		return &Basic{Reserve: DefaultReserve}, nil
	default:
		return nil, fmt.Errorf("unknown ai level: %q", level)
	}
}

// Factory satisfies engine.AdvisorFactory.
func Factory(spec models.PlayerSpec) (engine.Advisor, error) {
	return NewAdvisor(spec.Level)
}

func has(possible []models.Action, a models.Action) bool {
	for _, x := range possible {
		if x == a {
			return true
		}
	}
	return false
}

func do(a models.Action) []engine.Input {
	return []engine.Input{engine.Do(a)}
}

// liquidate raises cash for outstanding debts: pay if possible, otherwise
// mortgage, then sell buildings, then give up.
func liquidate(game engine.View, player models.Player, possible []models.Action) []engine.Input {
	if has(possible, models.ActionPayDebt) {
		return do(models.ActionPayDebt)
	}
	if has(possible, models.ActionSell) {
		if tiles := game.Candidates(player.ID, models.ActionSell); len(tiles) > 0 {
			return []engine.Input{engine.On(models.ActionSell, tiles[0])}
		}
	}
	if has(possible, models.ActionMortgage) {
		if tiles := game.Candidates(player.ID, models.ActionMortgage); len(tiles) > 0 {
			return []engine.Input{engine.On(models.ActionMortgage, tiles[0])}
		}
	}
	return do(models.ActionForfeit)
}
