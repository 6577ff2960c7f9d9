package session

import (
	"sync"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
)

// Session serialises access to one game.
type Session struct {
	ID   string
	Name string
	Seed int64

	mu    sync.Mutex
	game  *engine.Game
	mgr   *Manager
	ended bool
}

// Bus is safe to use without the lock; handlers run inside the lock of the
// call that published.
func (s *Session) Bus() *events.Bus {
	return s.game.Bus()
}

// Step drives one decision. A nil playerID steps whoever is acting.
func (s *Session) Step(playerID *int, in *engine.Input) (engine.StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		res engine.StepResult
		err error
	)
	if playerID != nil {
		res, err = s.game.StepAs(*playerID, in)
	} else {
		res, err = s.game.Step(in)
	}
	if err == nil {
		s.changed()
	}
	return res, err
}

// Run plays up to n turns and reports how many finished.
func (s *Session) Run(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	done, err := s.game.RunTurns(n)
	s.changed()
	return done, err
}

// Fault is the latched advisor error, if any. A faulted game accepts no
// further steps.
func (s *Session) Fault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Fault()
}

// Pending reports what the acting seat may do without changing anything.
func (s *Session) Pending() (models.Player, []models.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ActingPlayer(), s.game.PossibleActions()
}

func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// changed saves the snapshot and fires OnEnd the first time the game is
// over. s.mu must be held.
func (s *Session) changed() {
	log := s.mgr.log.WithField("game", s.ID)
	if saver := s.mgr.opts.Saver; saver != nil {
		if err := saver.Save(s.ID, s.game.Snapshot()); err != nil {
			log.WithError(err).Warn("snapshot not saved")
		}
	}
	if s.ended || s.game.State() != models.StateOver {
		return
	}
	s.ended = true
	var winner *models.Player
	if w, ok := s.game.Winner(); ok {
		winner = &w
	}
	log.WithFields(logrus.Fields{"turns": s.game.TurnCount()}).Info("session over")
	if s.mgr.opts.OnEnd != nil {
		s.mgr.opts.OnEnd(s, winner)
	}
}
