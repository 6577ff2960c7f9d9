package controllers

import (
	"encoding/json"
	"errors"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/session"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GameRecords is the persisted side of sessions.
type GameRecords interface {
	CreateGame(game *models.Game) error
	VerifyGame(id string) bool
	OpenGames() ([]models.Game, error)
	GetGame(id string) (*models.Game, error)
}

// Archive holds the last snapshot of sessions that are no longer live.
type Archive interface {
	Snapshot(id string) ([]byte, error)
}

type GameController struct {
	Sessions *session.Manager
	Records  GameRecords
	Archive  Archive
	Log      logrus.FieldLogger
}

// MaxRunTurns caps a single run request.
const MaxRunTurns = 1000

// statusOf maps engine and session errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidMove), errors.Is(err, engine.ErrInvalidConfig):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, session.ErrUnknownSession):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	code := statusOf(err)
	if code == fiber.StatusInternalServerError {
		gc.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	dto := new(models.GameCreateDto)
	if err := c.BodyParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s, err := gc.Sessions.Create(*dto)
	if err != nil {
		return gc.fail(c, err)
	}
	game := &models.Game{
		Id:      s.ID,
		Name:    dto.Name,
		Status:  models.GameStatusInProgress,
		Type:    dto.Type,
		Players: len(dto.Players),
	}
	if err := gc.Records.CreateGame(game); err != nil {
		gc.Sessions.Remove(s.ID)
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID, "seed": s.Seed})
}

func (gc *GameController) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := gc.Records.OpenGames()
	if err != nil {
		return gc.fail(c, err)
	}
	if games == nil {
		games = []models.Game{}
	}
	return c.JSON(games)
}

func (gc *GameController) VerifyGame(c *fiber.Ctx) error {
	dto := new(models.VerifyGameDto)
	if err := c.QueryParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": gc.Records.VerifyGame(dto.Code)})
}

// GetGame returns the snapshot and the pending choice. Finished games are
// served from the archive.
func (gc *GameController) GetGame(c *fiber.Ctx) error {
	s, err := gc.Sessions.Get(c.Params("id"))
	if errors.Is(err, session.ErrUnknownSession) {
		return gc.archived(c, c.Params("id"), err)
	}
	if err != nil {
		return gc.fail(c, err)
	}
	acting, possible := s.Pending()
	snap := s.Snapshot()
	out := fiber.Map{
		"id":               s.ID,
		"name":             s.Name,
		"players":          playerDtos(snap),
		"snapshot":         snap,
		"acting":           acting,
		"possible_actions": possible,
	}
	if err := s.Fault(); err != nil {
		out["fault"] = err.Error()
	}
	return c.JSON(out)
}

func (gc *GameController) archived(c *fiber.Ctx, id string, miss error) error {
	if gc.Archive == nil {
		return gc.fail(c, miss)
	}
	data, err := gc.Archive.Snapshot(id)
	if err != nil {
		gc.Log.WithError(err).WithField("game", id).Debug("no archived snapshot")
		return gc.fail(c, miss)
	}
	out := fiber.Map{"id": id, "snapshot": json.RawMessage(data)}
	if game, err := gc.Records.GetGame(id); err == nil {
		out["name"] = game.Name
		out["status"] = game.Status
	}
	return c.JSON(out)
}

func playerDtos(snap engine.Snapshot) []models.PlayerDto {
	out := make([]models.PlayerDto, len(snap.Players))
	for i, p := range snap.Players {
		out[i] = models.PlayerDto{
			Id:         p.ID,
			Username:   p.Name,
			Controller: p.Controller.String(),
			Balance:    p.Money,
			Pos:        p.TileID,
			Properties: []int{},
			Jail:       p.InJail,
			JailCards:  p.JailCardCount(),
			Forfeited:  p.Forfeited,
		}
	}
	for tile, st := range snap.Tiles {
		if st.OwnerID != nil && *st.OwnerID < len(out) {
			out[*st.OwnerID].Properties = append(out[*st.OwnerID].Properties, tile)
		}
	}
	return out
}

func (gc *GameController) Step(c *fiber.Ctx) error {
	s, err := gc.Sessions.Get(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	dto := new(models.StepDto)
	if err := c.BodyParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	in, err := session.InputFrom(*dto)
	if err != nil {
		return gc.fail(c, err)
	}
	res, err := s.Step(dto.PlayerId, in)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) Run(c *fiber.Ctx) error {
	s, err := gc.Sessions.Get(c.Params("id"))
	if err != nil {
		return gc.fail(c, err)
	}
	dto := &models.RunDto{Turns: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(dto); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if dto.Turns < 1 || dto.Turns > MaxRunTurns {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "turns must be between 1 and 1000"})
	}
	done, err := s.Run(dto.Turns)
	if err != nil {
		return gc.fail(c, err)
	}
	snap := s.Snapshot()
	return c.JSON(fiber.Map{"turns": done, "state": snap.State, "snapshot": snap})
}
