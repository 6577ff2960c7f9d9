package logging

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/DedS3t/monopoly-engine/platform/events"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, Init(&config.Config{LogLevel: "debug", LogFormat: "json"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, Init(&config.Config{LogLevel: "loud"}))
}

func TestEventLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	bus := events.NewBus()
	h := EventLogger(bus, log)

	bus.Publish(events.PlayerPaidRent, events.RentPayload{PlayerID: 1, OwnerID: 0, TileID: 3, Amount: 4})
	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, e.Level)
	assert.Equal(t, "PLAYER_PAID_RENT", e.Data["event"])
	assert.Equal(t, 4, e.Data["amount"])
	assert.Equal(t, 3, e.Data["tile"])

	bus.Publish(events.PlayerForfeited, events.ForfeitPayload{PlayerID: 2})
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	bus.Unsubscribe(h)
	bus.Publish(events.GameEnded, events.GamePayload{})
	assert.Len(t, hook.Entries, 2)
}
