package engine

import (
	"io/ioutil"
	"testing"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/cards"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// scriptedRNG replays dice faces. Once exhausted it repeats the last pair.
type scriptedRNG struct {
	faces []int
	next  int
}

func dice(pairs ...[2]int) *scriptedRNG {
	r := &scriptedRNG{}
	for _, p := range pairs {
		r.faces = append(r.faces, p[0], p[1])
	}
	return r
}

func (r *scriptedRNG) Intn(n int) int {
	if len(r.faces) == 0 {
		return 0
	}
	i := r.next
	if i >= len(r.faces) {
		i = len(r.faces) - 2 + i%2
	}
	r.next++
	return (r.faces[i] - 1) % n
}

// advisorFunc adapts a function to Advisor.
type advisorFunc func(View, models.Player, models.TurnPhase, []models.Action) []Input

func (f advisorFunc) ConsiderAction(g View, p models.Player, phase models.TurnPhase, possible []models.Action) []Input {
	return f(g, p, phase, possible)
}

// firstOf picks the first preferred action that is legal.
func firstOf(prefs ...models.Action) Advisor {
	return advisorFunc(func(_ View, _ models.Player, _ models.TurnPhase, possible []models.Action) []Input {
		for _, a := range prefs {
			if contains(possible, a) {
				return []Input{Do(a)}
			}
		}
		return []Input{Do(possible[0])}
	})
}

// buyer buys whatever it lands on and pays what it owes.
var buyer = firstOf(models.ActionPayDebt, models.ActionBuy, models.ActionRoll, models.ActionNextPhase, models.ActionAbstain, models.ActionAuction, models.ActionForfeit)

// builder plays like buyer and develops while it has cash to spare.
var builder = advisorFunc(func(g View, p models.Player, phase models.TurnPhase, possible []models.Action) []Input {
	if phase == models.PhasePostRoll && contains(possible, models.ActionDevelop) && p.Money > 300 {
		if tiles := g.Candidates(p.ID, models.ActionDevelop); len(tiles) > 0 {
			return []Input{On(models.ActionDevelop, tiles[0])}
		}
	}
	return buyer.ConsiderAction(g, p, phase, possible)
})

// passive never buys or bids.
var passive = firstOf(models.ActionPayDebt, models.ActionRoll, models.ActionNextPhase, models.ActionAbstain, models.ActionAuction, models.ActionForfeit)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}

// blankDecks holds one card per deck that does nothing.
func blankDecks(t *testing.T) *cards.Decks {
	noop := []models.Effect{{Op: models.OpCollect, Amount: 0}}
	chance, err := cards.NewDeck(models.ChanceDeck, []models.Card{{Code: "noop", Effects: noop}})
	require.NoError(t, err)
	chest, err := cards.NewDeck(models.CommunityChestDeck, []models.Card{{Code: "noop", Effects: noop}})
	require.NoError(t, err)
	return &cards.Decks{Chance: chance, CommunityChest: chest}
}

func specs(controller models.Controller, names ...string) []models.PlayerSpec {
	out := make([]models.PlayerSpec, len(names))
	for i, n := range names {
		out[i] = models.PlayerSpec{Name: n, Controller: controller}
	}
	return out
}

type fixture struct {
	game *Game
	rec  *events.Recorder
}

// newGame builds a running session. advisor drives every AI seat.
func newGame(t *testing.T, cfg Config, advisor Advisor) fixture {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	if cfg.Advisors == nil && advisor != nil {
		cfg.Advisors = func(models.PlayerSpec) (Advisor, error) { return advisor, nil }
	}
	if cfg.RNG == nil {
		cfg.RNG = dice([2]int{1, 2})
	}
	g, err := New(cfg)
	require.NoError(t, err)
	rec := &events.Recorder{}
	g.Bus().SubscribeAll(rec.Handle)
	require.NoError(t, g.Setup())
	require.NoError(t, g.Start())
	return fixture{game: g, rec: rec}
}

func (f fixture) own(playerID int, tiles ...int) {
	for _, id := range tiles {
		owner := playerID
		f.game.tiles[id].OwnerID = &owner
	}
}

// setMoney books the change through the bank so conservation checks hold.
func (f fixture) setMoney(playerID, money int) {
	p := f.game.players[playerID]
	f.game.bankFlow += money - p.Money
	p.Money = money
}

func (f fixture) step(t *testing.T, in *Input) StepResult {
	t.Helper()
	res, err := f.game.Step(in)
	require.NoError(t, err)
	return res
}

func (f fixture) do(t *testing.T, action models.Action) StepResult {
	t.Helper()
	in := Do(action)
	return f.step(t, &in)
}

// conserved checks that cash only moved through the bank ledger.
func (f fixture) conserved(t *testing.T) {
	t.Helper()
	start := f.game.rules.StartingMoney * len(f.game.players)
	require.Equal(t, start+f.game.BankFlow(), f.game.TotalMoney(), "money created or destroyed")
}
