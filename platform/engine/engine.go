package engine

import (
	"fmt"
	"sort"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/cards"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Input is one requested action. TileID is set for tile-targeting actions.
type Input struct {
	Action models.Action `json:"action"`
	TileID *int          `json:"tile_id,omitempty"`
}

// Do builds an input without a tile.
func Do(action models.Action) Input {
	return Input{Action: action}
}

// On builds a tile-targeting input.
func On(action models.Action, tileID int) Input {
	return Input{Action: action, TileID: &tileID}
}

// View is the read-only session surface advisors and clients see.
type View interface {
	Board() *board.Board
	Rules() Rules
	Player(id int) (models.Player, error)
	Players() []models.Player
	TileState(tileID int) (models.TileState, error)
	OwnedTiles(playerID int) []int
	Candidates(playerID int, action models.Action) []int
	Turn() TurnState
	Auction() (AuctionState, bool)
	Debts(playerID int) []Debt
	CalculateRent(tileID, diceTotal, multiplier int) (int, error)
	HousesAvailable() int
	HotelsAvailable() int
}

// Advisor decides for one AI-controlled seat. It must return at least one
// action and every action must be legal when applied in order.
type Advisor interface {
	ConsiderAction(game View, player models.Player, phase models.TurnPhase, possible []models.Action) []Input
}

// AdvisorFactory builds the advisor of an AI seat from its spec.
type AdvisorFactory func(spec models.PlayerSpec) (Advisor, error)

// Config is everything a session is constructed from. Board and Decks
// default to the bundled UK data; RNG is required.
type Config struct {
	Players      []models.PlayerSpec
	ShuffleDecks bool
	RollForOrder bool
	RNG          RNG
	Rules        *Rules
	Board        *board.Board
	Decks        *cards.Decks
	Advisors     AdvisorFactory
	Logger       logrus.FieldLogger
	Bus          *events.Bus
}

// Game is one session aggregate. It assumes exclusive access.
type Game struct {
	rules   Rules
	board   *board.Board
	decks   *cards.Decks
	rng     RNG
	log     logrus.FieldLogger
	bus     *events.Bus
	order   bool
	shuffle bool

	state    models.GameState
	phase    models.TurnPhase
	players  []*models.Player
	advisors []Advisor
	tiles    []models.TileState
	current  int
	turns    int
	turn     TurnState
	auction  *AuctionState
	debts    map[int][]Debt
	houses   int
	hotels   int
	bankFlow int
	winner   *int
	fault    error
}

func New(cfg Config) (*Game, error) {
	if n := len(cfg.Players); n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidConfig, MinPlayers, MaxPlayers, n)
	}
	if cfg.RNG == nil {
		return nil, fmt.Errorf("%w: missing RNG", ErrInvalidConfig)
	}
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}

	b := cfg.Board
	if b == nil {
		b = board.Default()
	}
	decks := cfg.Decks
	if decks == nil {
		var err error
		if decks, err = cards.LoadCards(""); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := validateCards(b, decks); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	g := &Game{
		rules:   rules,
		board:   b,
		decks:   decks,
		rng:     cfg.RNG,
		log:     log,
		bus:     bus,
		order:   cfg.RollForOrder,
		shuffle: cfg.ShuffleDecks,
		state:   models.StateInit,
		tiles:   make([]models.TileState, b.Len()),
		debts:   make(map[int][]Debt),
		houses:  rules.Houses,
		hotels:  rules.Hotels,
	}
	for i, spec := range cfg.Players {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		var advisor Advisor
		if spec.Controller == models.AI {
			if cfg.Advisors == nil {
				return nil, fmt.Errorf("%w: AI player %q without advisor factory", ErrInvalidConfig, name)
			}
			var err error
			if advisor, err = cfg.Advisors(spec); err != nil {
				return nil, fmt.Errorf("%w: player %q: %v", ErrInvalidConfig, name, err)
			}
		}
		g.players = append(g.players, &models.Player{
			ID:         i,
			Name:       name,
			Controller: spec.Controller,
			Level:      spec.Level,
		})
		g.advisors = append(g.advisors, advisor)
	}
	return g, nil
}

func validateCards(b *board.Board, decks *cards.Decks) error {
	if decks.Chance == nil || decks.CommunityChest == nil {
		return fmt.Errorf("%w: both decks are required", ErrInvalidConfig)
	}
	for _, d := range decks.All() {
		for _, c := range d.Cards() {
			for _, e := range c.Effects {
				switch e.Op {
				case models.OpAdvanceTo, models.OpTeleport:
					if _, err := b.GetByCode(e.Tile); err != nil {
						return fmt.Errorf("%w: card %q: %v", ErrInvalidConfig, c.Code, err)
					}
				case models.OpAdvanceNearest:
					if _, err := b.FirstOfKind(e.Kind); err != nil {
						return fmt.Errorf("%w: card %q: %v", ErrInvalidConfig, c.Code, err)
					}
				}
			}
		}
	}
	return nil
}

// Setup seats the players on GO and moves INIT to READY.
func (g *Game) Setup() error {
	if g.state != models.StateInit {
		return fmt.Errorf("%w: setup in %s", ErrInvalidState, g.state)
	}
	if g.shuffle {
		g.decks.Shuffle(g.rng)
	}
	for _, p := range g.players {
		p.Money = g.rules.StartingMoney
		p.TileID = 0
	}
	if g.order {
		g.rollForOrder()
	}
	g.state = models.StateReady
	g.log.WithField("players", len(g.players)).Debug("game ready")
	g.bus.Publish(events.GameReady, events.GamePayload{State: g.state})
	return nil
}

// rollForOrder sorts seats by one throw each, highest first. Ties keep
// input order.
func (g *Game) rollForOrder() {
	rolled := make([]*models.Player, len(g.players))
	throws := make([]Dice, len(g.players))
	totals := make([]int, len(g.players))
	for i, p := range g.players {
		throws[i] = throw(g.rng)
		totals[i] = throws[i].Total()
		rolled[i] = p
	}
	idx := make([]int, len(g.players))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return totals[idx[a]] > totals[idx[b]] })

	players := make([]*models.Player, len(idx))
	advisors := make([]Advisor, len(idx))
	for seat, from := range idx {
		players[seat] = g.players[from]
		players[seat].ID = seat
		advisors[seat] = g.advisors[from]
	}
	g.players, g.advisors = players, advisors

	// Published after re-seating so each payload carries the final seat.
	for i, p := range rolled {
		d := throws[i]
		g.bus.Publish(events.PlayerRolled, events.RollPayload{PlayerID: p.ID, Die1: d[0], Die2: d[1], Double: d.Double()})
	}
}

// Start moves READY to RUNNING and opens the first turn.
func (g *Game) Start() error {
	if g.state != models.StateReady {
		return fmt.Errorf("%w: start in %s", ErrInvalidState, g.state)
	}
	g.state = models.StateRunning
	g.current = 0
	g.turns = 1
	g.phase = models.PhasePreRoll
	g.turn = TurnState{}
	g.bus.Publish(events.GameStarted, events.GamePayload{State: g.state})
	g.startTurn()
	return nil
}

func (g *Game) startTurn() {
	p := g.players[g.current]
	g.log.WithFields(logrus.Fields{"turn": g.turns, "player": p.Name}).Debug("turn started")
	g.bus.Publish(events.TurnStarted, events.TurnPayload{PlayerID: p.ID, Name: p.Name, Turn: g.turns})
	g.bus.Publish(events.PhaseStarted, events.PhasePayload{PlayerID: p.ID, Phase: g.phase})
}

func (g *Game) Bus() *events.Bus { return g.bus }
func (g *Game) Board() *board.Board { return g.board }
func (g *Game) Rules() Rules { return g.rules }
func (g *Game) State() models.GameState { return g.state }
func (g *Game) Phase() models.TurnPhase { return g.phase }
func (g *Game) TurnCount() int { return g.turns }
func (g *Game) HousesAvailable() int { return g.houses }
func (g *Game) HotelsAvailable() int { return g.hotels }
func (g *Game) Fault() error { return g.fault }

// BankFlow is the net amount the bank has paid out to players.
func (g *Game) BankFlow() int { return g.bankFlow }

// TotalMoney is the cash held by all players.
func (g *Game) TotalMoney() int {
	total := 0
	for _, p := range g.players {
		total += p.Money
	}
	return total
}

// Winner is the last player standing once the game is over.
func (g *Game) Winner() (models.Player, bool) {
	if g.winner == nil {
		return models.Player{}, false
	}
	return *g.players[*g.winner], true
}

func (g *Game) CurrentPlayer() models.Player {
	return *g.players[g.current]
}

func (g *Game) Player(id int) (models.Player, error) {
	p, err := g.player(id)
	if err != nil {
		return models.Player{}, err
	}
	return *p, nil
}

func (g *Game) player(id int) (*models.Player, error) {
	if id < 0 || id >= len(g.players) {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return g.players[id], nil
}

func (g *Game) Players() []models.Player {
	out := make([]models.Player, len(g.players))
	for i, p := range g.players {
		out[i] = *p
	}
	return out
}

func (g *Game) TileState(tileID int) (models.TileState, error) {
	if tileID < 0 || tileID >= len(g.tiles) {
		return models.TileState{}, fmt.Errorf("tile %d: %w", tileID, ErrNotFound)
	}
	return g.tiles[tileID], nil
}

// OwnedTiles lists the tile ids held by a player, in board order.
func (g *Game) OwnedTiles(playerID int) []int {
	var out []int
	for id, s := range g.tiles {
		if s.OwnedBy(playerID) {
			out = append(out, id)
		}
	}
	return out
}

// Turn returns the current turn state including the turn player's debts.
func (g *Game) Turn() TurnState {
	t := g.turn
	t.Debts = g.Debts(g.players[g.current].ID)
	return t
}

func (g *Game) Auction() (AuctionState, bool) {
	if g.auction == nil {
		return AuctionState{}, false
	}
	return *g.auction, true
}

func (g *Game) Debts(playerID int) []Debt {
	debts := g.debts[playerID]
	if len(debts) == 0 {
		return nil
	}
	out := make([]Debt, len(debts))
	copy(out, debts)
	return out
}

// ActivePlayers counts players still in rotation.
func (g *Game) ActivePlayers() int {
	n := 0
	for _, p := range g.players {
		if !p.Forfeited {
			n++
		}
	}
	return n
}

// nextActive returns the next non-forfeited seat after from.
func (g *Game) nextActive(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if !g.players[seat].Forfeited {
			return seat
		}
	}
	return from
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:           g.state,
		Phase:           g.phase,
		Turn:            g.turns,
		CurrentPlayer:   g.current,
		Players:         g.Players(),
		Tiles:           append([]models.TileState(nil), g.tiles...),
		TurnState:       g.Turn(),
		HousesAvailable: g.houses,
		HotelsAvailable: g.hotels,
		BankFlow:        g.bankFlow,
		WinnerID:        g.winner,
	}
	if g.auction != nil {
		a := *g.auction
		s.Auction = &a
	}
	if len(g.debts) > 0 {
		s.Debts = make(map[int][]Debt, len(g.debts))
		for id := range g.debts {
			if d := g.Debts(id); d != nil {
				s.Debts[id] = d
			}
		}
	}
	return s
}
