package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// Message tells the driver what a step did.
type Message string

const (
	PhaseDone          Message = "PHASE_DONE"
	HumanInputRequired Message = "HUMAN_INPUT_REQUIRED"
	AIActionProcessed  Message = "AI_ACTION_PROCESSED"
	ActionProcessed    Message = "ACTION_PROCESSED"
)

// StepResult describes one step. PossibleActions is set when human input is
// required; NextPhase when a phase completed.
type StepResult struct {
	Phase           models.TurnPhase  `json:"phase"`
	Message         Message           `json:"message"`
	Player          models.Player     `json:"player"`
	PossibleActions []models.Action   `json:"possible_actions,omitempty"`
	NextPhase       *models.TurnPhase `json:"next_phase,omitempty"`
}

// maxStepsPerTurn bounds RunTurns against advisors that never end a phase.
const maxStepsPerTurn = 500

// Step advances the session by one decision of the acting player. Human
// input is ignored while an AI seat is acting.
func (g *Game) Step(input *Input) (StepResult, error) {
	if g.fault != nil {
		return StepResult{}, g.fault
	}
	if g.state != models.StateRunning {
		return StepResult{}, fmt.Errorf("%w: step in %s", ErrInvalidState, g.state)
	}
	p := g.actor()
	if p.Controller == models.AI {
		return g.stepAdvisor(p)
	}
	return g.stepHuman(p, input)
}

// StepAs applies human input on behalf of playerID, rejecting input from a
// seat that is not acting.
func (g *Game) StepAs(playerID int, input *Input) (StepResult, error) {
	if g.fault != nil {
		return StepResult{}, g.fault
	}
	if g.state != models.StateRunning {
		return StepResult{}, fmt.Errorf("%w: step in %s", ErrInvalidState, g.state)
	}
	if _, err := g.player(playerID); err != nil {
		return StepResult{}, err
	}
	p := g.actor()
	if input != nil {
		if p.ID != playerID {
			return StepResult{}, moveErr(input.Action, "%s is acting, not player %d", p.Name, playerID)
		}
		if p.Controller != models.Human {
			return StepResult{}, moveErr(input.Action, "%s is not human-controlled", p.Name)
		}
	}
	return g.Step(input)
}

func (g *Game) stepHuman(p *models.Player, input *Input) (StepResult, error) {
	phase := g.phase
	possible := g.possibleFor(p)
	if input == nil {
		return StepResult{Phase: phase, Message: HumanInputRequired, Player: *p, PossibleActions: possible}, nil
	}
	if !contains(possible, input.Action) {
		return StepResult{}, moveErr(input.Action, "not allowed in %s", phase)
	}
	done, err := g.apply(p, *input)
	if err != nil {
		return StepResult{}, err
	}
	if done {
		return g.complete(phase, p), nil
	}
	return StepResult{Phase: phase, Message: ActionProcessed, Player: *p}, nil
}

func (g *Game) stepAdvisor(p *models.Player) (StepResult, error) {
	phase := g.phase
	advisor := g.advisors[p.ID]
	if advisor == nil {
		return StepResult{}, g.latch(fmt.Errorf("%w: %s has no advisor", ErrAdvisorFault, p.Name))
	}
	inputs := advisor.ConsiderAction(g, *p, phase, g.possibleFor(p))
	if len(inputs) == 0 {
		return StepResult{}, g.latch(fmt.Errorf("%w: %s returned no action in %s", ErrAdvisorFault, p.Name, phase))
	}
	done := false
	for _, in := range inputs {
		if done {
			return StepResult{}, g.latch(fmt.Errorf("%w: %s acted after %s completed", ErrAdvisorFault, p.Name, phase))
		}
		if g.actor().ID != p.ID {
			return StepResult{}, g.latch(fmt.Errorf("%w: %s chose %s while %s is acting", ErrAdvisorFault, p.Name, in.Action, g.actor().Name))
		}
		if !contains(g.possibleFor(p), in.Action) {
			return StepResult{}, g.latch(fmt.Errorf("%w: %s chose illegal %s in %s", ErrAdvisorFault, p.Name, in.Action, phase))
		}
		var err error
		if done, err = g.apply(p, in); err != nil {
			return StepResult{}, g.latch(fmt.Errorf("%w: %s: %v", ErrAdvisorFault, p.Name, err))
		}
		if g.state == models.StateOver {
			break
		}
	}
	if done {
		return g.complete(phase, p), nil
	}
	return StepResult{Phase: phase, Message: AIActionProcessed, Player: *p}, nil
}

func (g *Game) latch(err error) error {
	g.fault = err
	g.log.WithError(err).Error("session halted")
	return err
}

// validate checks a tile-targeting input before anything is published.
func (g *Game) validate(p *models.Player, in Input) error {
	if !in.Action.NeedsTile() {
		return nil
	}
	if in.TileID == nil {
		return moveErr(in.Action, "tile required")
	}
	var check func(int, int) error
	switch in.Action {
	case models.ActionMortgage:
		check = g.checkMortgage
	case models.ActionUnmortgage:
		check = g.checkUnmortgage
	case models.ActionDevelop:
		check = g.checkDevelop
	case models.ActionSell:
		check = g.checkSell
	}
	return check(p.ID, *in.TileID)
}

// apply performs one legal action and reports whether it ended the phase.
// A forfeit by the turn player also ends the phase.
func (g *Game) apply(p *models.Player, in Input) (bool, error) {
	if err := g.validate(p, in); err != nil {
		return false, err
	}
	g.bus.Publish(events.PlayerAction, events.ActionPayload{PlayerID: p.ID, Phase: g.phase, Action: in.Action, TileID: in.TileID})

	switch in.Action {
	case models.ActionNextPhase:
		return true, nil
	case models.ActionRoll:
		g.roll(p)
		return true, nil
	case models.ActionPayJailFine:
		return false, g.payJailFine(p)
	case models.ActionUseJailCard:
		return false, g.useJailCard(p)
	case models.ActionMortgage:
		return false, g.Mortgage(p.ID, *in.TileID)
	case models.ActionUnmortgage:
		return false, g.Unmortgage(p.ID, *in.TileID)
	case models.ActionDevelop:
		return false, g.Develop(p.ID, *in.TileID)
	case models.ActionSell:
		return false, g.Sell(p.ID, *in.TileID)
	case models.ActionBuy:
		tile := g.board.MustGet(p.TileID)
		return true, g.Buy(p.ID, tile.ID, tile.Price)
	case models.ActionAuction:
		g.turn.AuctionRequested = true
		return true, nil
	case models.ActionBid:
		return false, g.bid(p)
	case models.ActionAbstain:
		return false, g.abstain(p)
	case models.ActionPayDebt:
		return false, g.PayDebt(p.ID)
	case models.ActionForfeit:
		if err := g.Forfeit(p.ID); err != nil {
			return false, err
		}
		return p.ID == g.players[g.current].ID, nil
	}
	return false, moveErr(in.Action, "unsupported")
}

// complete closes the phase that was active when the step began and opens
// the next one.
func (g *Game) complete(phase models.TurnPhase, p *models.Player) StepResult {
	if g.state == models.StateOver {
		return StepResult{Phase: phase, Message: PhaseDone, Player: *p}
	}
	turnPlayer := g.players[g.current]
	g.bus.Publish(events.PhaseEnded, events.PhasePayload{PlayerID: turnPlayer.ID, Phase: phase})

	next, turnOver := g.nextPhase()
	if turnPlayer.Forfeited {
		next, turnOver = models.PhasePreRoll, true
	}
	if turnOver {
		g.bus.Publish(events.TurnEnded, events.TurnPayload{PlayerID: turnPlayer.ID, Name: turnPlayer.Name, Turn: g.turns})
		g.current = g.nextActive(g.current)
		g.turns++
		g.turn = TurnState{}
		g.auction = nil
		g.phase = next
		g.startTurn()
		return StepResult{Phase: phase, Message: PhaseDone, Player: *p, NextPhase: &next}
	}

	if next == models.PhaseRoll && phase == models.PhasePostRoll {
		g.turn.HasRolled = false
	}
	if phase == models.PhaseAuction {
		g.auction = nil
	}
	g.phase = next
	g.log.WithFields(logrus.Fields{"player": turnPlayer.Name, "phase": next}).Debug("phase started")
	g.bus.Publish(events.PhaseStarted, events.PhasePayload{PlayerID: turnPlayer.ID, Phase: next})
	if next == models.PhaseAuction {
		g.startAuction(turnPlayer, turnPlayer.TileID)
	}
	return StepResult{Phase: phase, Message: PhaseDone, Player: *p, NextPhase: &next}
}

// RunTurns steps until n turn boundaries pass, human input is required or
// the game ends. It returns the number of completed turns.
func (g *Game) RunTurns(n int) (int, error) {
	done := 0
	steps := 0
	for done < n && g.state == models.StateRunning {
		before := g.turns
		res, err := g.Step(nil)
		if err != nil {
			return done, err
		}
		if res.Message == HumanInputRequired {
			return done, nil
		}
		if g.turns != before {
			done++
			steps = 0
			continue
		}
		steps++
		if steps > maxStepsPerTurn {
			return done, g.latch(fmt.Errorf("%w: no turn progress after %d steps", ErrAdvisorFault, steps))
		}
	}
	return done, nil
}
