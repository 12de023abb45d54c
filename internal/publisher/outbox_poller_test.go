package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryOutbox struct {
	m      sync.Mutex
	events []OutboxEvent
}

func (m *memoryOutbox) Append(_ context.Context, eventType string, payload any) error {
	m.m.Lock()
	defer m.m.Unlock()
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.events = append(m.events, OutboxEvent{
		ID:        primitive.NewObjectID(),
		Type:      eventType,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (m *memoryOutbox) GetUnprocessed(_ context.Context, limit int64) ([]OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []OutboxEvent
	for _, e := range m.events {
		if !e.Processed {
			out = append(out, e)
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryOutbox) MarkProcessed(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Processed = true
		}
	}
	return nil
}

func (m *memoryOutbox) unprocessedCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	n := 0
	for _, e := range m.events {
		if !e.Processed {
			n++
		}
	}
	return n
}

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	// Start Kafka container using testcontainers Kafka module
	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	// Get broker address
	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	topicConfigs := []kafkaGo.TopicConfig{{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}}

	err = controllerConn.CreateTopics(topicConfigs...)
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestOutboxPoller_PublishesAndMarksProcessed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker, cleanupKafka := setupKafka(t)
	defer cleanupKafka()
	createTopic(t, broker, "storefront-orders")

	repo := &memoryOutbox{}
	require.NoError(t, repo.Append(ctx, "order.placed", map[string]string{"order_id": "o1", "user_id": "u1"}))
	require.NoError(t, repo.Append(ctx, "order.placed", map[string]string{"order_id": "o2", "user_id": "u1"}))

	poller := NewOutboxPoller(repo, broker)
	defer poller.Close()
	go poller.Run(ctx)

	require.Eventually(t, func() bool {
		return repo.unprocessedCount() == 0
	}, 30*time.Second, 500*time.Millisecond)

	// both events landed on the topic
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: []string{broker},
		Topic:   "storefront-orders",
		GroupID: "test-consumer",
	})
	defer reader.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	var got []string
	for i := 0; i < 2; i++ {
		msg, err := reader.ReadMessage(readCtx)
		require.NoError(t, err)
		assert.Equal(t, "order.placed", string(msg.Key))

		var payload map[string]string
		require.NoError(t, json.Unmarshal(msg.Value, &payload))
		got = append(got, payload["order_id"])
	}
	assert.ElementsMatch(t, []string{"o1", "o2"}, got)
}
