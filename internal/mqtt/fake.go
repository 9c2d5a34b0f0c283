package mqtt

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// FakeClient records published messages for test assertions.
type FakeClient struct {
	mu sync.Mutex

	// Messages contains everything that was published.
	Messages []Message

	// Connected controls the return value of IsConnected.
	Connected bool

	// PublishError, if set, is reported by the returned token.
	PublishError error

	// Disconnected tracks if Disconnect was called.
	Disconnected bool
}

// Message is a single recorded publish.
type Message struct {
	Topic    string
	QoS      byte
	Retained bool
	Payload  []byte
}

// NewFakeClient creates a connected FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{Connected: true}
}

// NewFakeDisplaySink creates a DisplaySink publishing through a FakeClient.
func NewFakeDisplaySink(c *FakeClient, prefix string) *DisplaySink {
	return newDisplaySink(c, prefix)
}

// Publish records the message.
func (f *FakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return &fakeToken{err: f.PublishError}
	}
	b, _ := payload.([]byte)
	f.Messages = append(f.Messages, Message{Topic: topic, QoS: qos, Retained: retained, Payload: b})
	return &fakeToken{}
}

// IsConnected reports whether the fake client is "connected".
func (f *FakeClient) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}

// SetConnected changes the connection state.
func (f *FakeClient) SetConnected(c bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Connected = c
}

// Disconnect marks the client as disconnected.
func (f *FakeClient) Disconnect(quiesce uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Disconnected = true
	f.Connected = false
}

// Published returns a copy of the recorded messages.
func (f *FakeClient) Published() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.Messages))
	copy(out, f.Messages)
	return out
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
