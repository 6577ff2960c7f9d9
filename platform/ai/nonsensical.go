package ai

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

// Nonsensical rolls, buys whatever it can and never bids.
type Nonsensical struct{}

func (Nonsensical) ConsiderAction(game engine.View, player models.Player, phase models.TurnPhase, possible []models.Action) []engine.Input {
	switch phase {
	case models.PhaseRoll:
		if has(possible, models.ActionRoll) {
			return do(models.ActionRoll)
		}
	case models.PhaseBuy:
		if has(possible, models.ActionBuy) {
			return do(models.ActionBuy)
		}
		if has(possible, models.ActionAuction) {
			return do(models.ActionAuction)
		}
	case models.PhaseAuction:
		if has(possible, models.ActionAbstain) {
			return do(models.ActionAbstain)
		}
	case models.PhasePreRoll, models.PhasePostRoll:
		if !has(possible, models.ActionNextPhase) {
			return liquidate(game, player, possible)
		}
	}
	return do(models.ActionNextPhase)
}
