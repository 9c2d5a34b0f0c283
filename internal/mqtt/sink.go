package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gluongp/gluon-timer/internal/display"
)

// DisplaySink publishes every row written to the panel as a retained message.
// Updates made while disconnected are buffered and replayed on reconnect.
type DisplaySink struct {
	mu      sync.Mutex
	client  client
	prefix  string
	pending *rowQueue
	timeout time.Duration
	now     func() time.Time
}

// NewDisplaySink connects to the broker and returns a sink publishing under prefix.
func NewDisplaySink(broker, prefix string) (*DisplaySink, error) {
	s := newDisplaySink(nil, prefix)

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("gluon-timer").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) { s.flush() }).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c := paho.NewClient(opts)
	s.mu.Lock()
	s.client = c
	s.mu.Unlock()

	token := c.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		// Connect keeps retrying in the background; rows are buffered meanwhile
		log.Printf("mqtt: broker %s not reachable yet, buffering display rows", broker)
		return s, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return s, nil
}

func newDisplaySink(c client, prefix string) *DisplaySink {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &DisplaySink{
		client:  c,
		prefix:  prefix,
		pending: newRowQueue(DefaultBufferSize),
		timeout: 5 * time.Second,
		now:     time.Now,
	}
}

// Clear blanks every retained row and announces the clear.
func (s *DisplaySink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.publish(bufferedMsg{topic: ClearTopic(s.prefix), payload: []byte("{}"), clear: true}); err != nil {
		return err
	}
	for row := 0; row < display.Rows; row++ {
		if err := s.publishRow(row, ""); err != nil {
			return err
		}
	}
	return nil
}

// WriteLine publishes the row.
func (s *DisplaySink) WriteLine(text string, row int) error {
	if row < 0 || row >= display.Rows {
		return fmt.Errorf("%w: %d", display.ErrRow, row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishRow(row, text)
}

// Pending returns the number of buffered updates.
func (s *DisplaySink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.len()
}

// Close disconnects from the broker.
func (s *DisplaySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Disconnect(1000) // 1 second timeout
	}
	return nil
}

func (s *DisplaySink) publishRow(row int, text string) error {
	payload, err := FormatPayload(row, text, s.now())
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return s.publish(bufferedMsg{
		topic:    RowTopic(s.prefix, row),
		payload:  payload,
		qos:      1,
		retained: true,
	})
}

// publish sends msg, or buffers it while the client is offline. Caller holds mu.
func (s *DisplaySink) publish(msg bufferedMsg) error {
	if s.client == nil || !s.client.IsConnected() {
		s.pending.push(msg)
		return nil
	}

	token := s.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("publish %s: timeout", msg.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", msg.topic, err)
	}
	return nil
}

// flush replays buffered updates after a (re)connect.
func (s *DisplaySink) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.pending.drainAll()
	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: replaying %d buffered display rows", len(msgs))
	for i, msg := range msgs {
		if err := s.publish(msg); err != nil {
			log.Printf("mqtt: replay error: %v", err)
			// Keep the rest for the next reconnect
			for _, rest := range msgs[i:] {
				s.pending.push(rest)
			}
			return
		}
	}
}
