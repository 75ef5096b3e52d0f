package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinsh4dd/e-com/internal/models"
)

func TestRecordCarriesEnvelope(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	ev := OrderStatusChanged{UserID: "7", OrderID: 1714550000000, From: models.OrderPending, To: models.OrderShipped, Actor: "admin"}

	rec, err := record(ev, now)
	require.NoError(t, err)
	assert.Equal(t, "7", string(rec.Key))
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, TypeOrderStatusChanged, string(rec.Headers[0].Value))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Value, &env))
	assert.Equal(t, TypeOrderStatusChanged, env.Type)
	assert.NotEmpty(t, env.ID)
	assert.True(t, env.OccurredAt.Equal(now))
	assert.Equal(t, time.UTC, env.OccurredAt.Location())

	var data OrderStatusChanged
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, ev, data)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), OrderPlaced{UserID: "1"}))
	evs := r.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, TypeOrderPlaced, evs[0].Type())
	assert.Equal(t, "1", evs[0].Key())
}
