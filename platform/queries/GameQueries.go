package queries

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// ErrNoRows is returned when a lookup matches nothing.
var ErrNoRows = pg.ErrNoRows

// Queries runs the record queries against db. Both *pg.DB and pg.Tx work.
type Queries struct {
	db orm.DB
}

func New(db orm.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) CreateGame(game *models.Game) error {
	_, err := q.db.Model(game).Insert()
	return err
}

func (q *Queries) VerifyGame(id string) bool {
	game := &models.Game{Id: id}
	return q.db.Model(game).WherePK().Select() == nil
}

func (q *Queries) GetGame(id string) (*models.Game, error) {
	game := &models.Game{Id: id}
	if err := q.db.Model(game).WherePK().Select(); err != nil {
		return nil, err
	}
	return game, nil
}

// OpenGames lists sessions that have not finished, newest first.
func (q *Queries) OpenGames() ([]models.Game, error) {
	var games []models.Game
	err := q.db.Model(&games).
		Where("status != ?", models.GameStatusOver).
		Order("created_at DESC").
		Select()
	return games, err
}

func (q *Queries) SetStatus(id, status, winner string) error {
	game := &models.Game{Id: id, Status: status, Winner: winner}
	res, err := q.db.Model(game).Column("status", "winner").WherePK().Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
