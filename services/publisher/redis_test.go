package publisher

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()
	publisher := NewRedisPublisher(ctx, "localhost:6379", 0, "test_flyers", 1, 10)
	defer publisher.Close()

	// Create a subscriber to verify the message was published
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	_, err := client.Ping(ctx).Result()
	if err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	// With streamCount 1, all records land on test_flyers:0
	err = client.XGroupCreateMkStream(ctx, "test_flyers:0", "test_group", "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		t.Fatal(err)
	}

	messages := make(chan string, 1)

	go func() {
		message, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Streams:  []string{"test_flyers:0", ">"},
			Group:    "test_group",
			Consumer: "test_consumer",
			Block:    0,
		}).Result()
		assert.NoError(t, err)
		messages <- message[0].Messages[0].Values["Lidl"].(string)
	}()

	time.Sleep(100 * time.Millisecond)

	err = publisher.Publish("Lidl", []byte("test_record"))
	assert.NoError(t, err)

	select {
	case msg := <-messages:
		// The message should be base64 encoded
		assert.Equal(t, "dGVzdF9yZWNvcmQ=", msg) // base64 of "test_record"
	case <-time.After(1 * time.Second):
		t.Error("Timed out waiting for message")
	}

	assert.NoError(t, publisher.TrimStreams())
}
