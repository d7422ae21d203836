package kafka_test

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "b-1",
		Value: map[string]string{"type": "booking.created", "room_id": "R101"},
	}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("b-1"), out.Key)
	assert.JSONEq(t, `{"type":"booking.created","room_id":"R101"}`, string(out.Value))

	_, err = (&kafka.Message{Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestClient_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "hotel.booking.events", kafka.Message{Key: "b-1", Value: 1}))
	assert.NoError(t, client.Close())
}
