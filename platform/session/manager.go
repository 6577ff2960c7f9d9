package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg"
	"github.com/DedS3t/monopoly-engine/platform/ai"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/cards"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/DedS3t/monopoly-engine/platform/logging"
	"github.com/sirupsen/logrus"
)

// ErrUnknownSession is returned for ids the manager does not hold.
var ErrUnknownSession = errors.New("session: unknown session")

const idLength = 6

// Saver persists the snapshot taken after every change.
type Saver interface {
	Save(id string, snap engine.Snapshot) error
}

// Options configure a Manager. Empty file names select the bundled data.
type Options struct {
	BoardFile string
	CardsFile string
	Logger    logrus.FieldLogger
	Saver     Saver
	// OnEnd is called once, under the session lock, when a game is over.
	OnEnd func(s *Session, winner *models.Player)
}

// Manager owns the running sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	board    *board.Board
	opts     Options
	log      logrus.FieldLogger
}

func NewManager(opts Options) (*Manager, error) {
	b, err := board.LoadProperties(opts.BoardFile)
	if err != nil {
		return nil, err
	}
	if _, err := cards.LoadCards(opts.CardsFile); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		board:    b,
		opts:     opts,
		log:      log,
	}, nil
}

// Create builds, sets up and starts a session from dto.
func (m *Manager) Create(dto models.GameCreateDto) (*Session, error) {
	decks, err := cards.LoadCards(m.opts.CardsFile)
	if err != nil {
		return nil, err
	}
	seed := dto.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shuffle := true
	if dto.ShuffleDecks != nil {
		shuffle = *dto.ShuffleDecks
	}

	m.mu.Lock()
	id := m.allocate()
	m.sessions[id] = nil
	m.mu.Unlock()

	log := m.log.WithField("game", id)
	bus := events.NewBus()
	logging.EventLogger(bus, log)

	game, err := engine.New(engine.Config{
		Players:      dto.Players,
		ShuffleDecks: shuffle,
		RollForOrder: dto.RollForOrder,
		RNG:          rand.New(rand.NewSource(seed)),
		Board:        m.board,
		Decks:        decks,
		Advisors:     ai.Factory,
		Logger:       log,
		Bus:          bus,
	})
	if err == nil {
		err = game.Setup()
	}
	if err == nil {
		err = game.Start()
	}
	if err != nil {
		m.Remove(id)
		return nil, err
	}

	s := &Session{ID: id, Name: dto.Name, Seed: seed, game: game, mgr: m}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	s.changed()
	log.WithFields(logrus.Fields{"players": len(dto.Players), "seed": seed}).Info("session created")
	return s, nil
}

// allocate picks an unused id. m.mu must be held.
func (m *Manager) allocate() string {
	for {
		id := pkg.RandString(idLength)
		if _, taken := m.sessions[id]; !taken {
			return id
		}
	}
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
