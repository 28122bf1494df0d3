package publisher

// Publisher represents a service for publishing parsed flyer records
type Publisher interface {
	// Publish publishes one serialized record under the given key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
