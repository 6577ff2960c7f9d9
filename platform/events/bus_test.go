package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversByType(t *testing.T) {
	bus := NewBus()
	var rolled, all []Type
	bus.Subscribe(PlayerRolled, func(e Event) { rolled = append(rolled, e.Type) })
	bus.SubscribeAll(func(e Event) { all = append(all, e.Type) })

	bus.Publish(TurnStarted, TurnPayload{PlayerID: 1})
	bus.Publish(PlayerRolled, RollPayload{PlayerID: 1, Die1: 2, Die2: 2, Double: true})

	assert.Equal(t, []Type{PlayerRolled}, rolled)
	assert.Equal(t, []Type{TurnStarted, PlayerRolled}, all)
}

func TestSeqIsMonotonic(t *testing.T) {
	bus := NewBus()
	rec := &Recorder{}
	bus.SubscribeAll(rec.Handle)

	for i := 0; i < 5; i++ {
		bus.Publish(PlayerAdvance, AdvancePayload{To: i})
	}
	require.Len(t, rec.Events, 5)
	for i, e := range rec.Events {
		assert.Equal(t, i+1, e.Seq)
		assert.Equal(t, i, e.Payload.(AdvancePayload).To)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	h := bus.Subscribe(GameEnded, func(Event) { calls++ })
	bus.Publish(GameEnded, GamePayload{})
	bus.Unsubscribe(h)
	bus.Publish(GameEnded, GamePayload{})
	assert.Equal(t, 1, calls)

	assert.Equal(t, -1, bus.SubscribeAll(nil))
	bus.Unsubscribe(42)
}

func TestHandlerMaySubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	late := 0
	var self int
	self = bus.SubscribeAll(func(Event) {
		bus.Unsubscribe(self)
		bus.SubscribeAll(func(Event) { late++ })
	})

	bus.Publish(GameStarted, GamePayload{})
	assert.Zero(t, late, "handlers added during delivery wait for the next event")
	bus.Publish(GameStarted, GamePayload{})
	assert.Equal(t, 1, late)
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "PLAYER_PASSED_GO", PlayerPassedGo.String())
	assert.Equal(t, "EVENT_99", Type(99).String())
	assert.Len(t, Types(), 22)
	for _, typ := range Types() {
		assert.NotContains(t, typ.String(), "EVENT_")
	}
}
