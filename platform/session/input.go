package session

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
)

// InputFrom converts a client step request. An empty action asks for the
// pending choice and yields a nil input.
func InputFrom(dto models.StepDto) (*engine.Input, error) {
	if dto.Action == "" {
		return nil, nil
	}
	action, err := models.ParseAction(dto.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrInvalidMove, err)
	}
	if action.NeedsTile() && dto.TileId == nil {
		return nil, &engine.MoveError{Action: action, Reason: "tile_id is required"}
	}
	in := engine.Do(action)
	if dto.TileId != nil {
		in = engine.On(action, *dto.TileId)
	}
	return &in, nil
}
