// Package mqtt mirrors the timer display onto MQTT topics for a remote panel.
// Only the text rows shown on the panel are published.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopicPrefix is the topic root for display rows.
const DefaultTopicPrefix = "gluon/display"

// DefaultBufferSize is the number of row updates kept while disconnected.
const DefaultBufferSize = 64

// client is the part of paho.Client the sink needs.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// RowTopic returns the retained topic for a display row.
func RowTopic(prefix string, row int) string {
	return fmt.Sprintf("%s/row/%d", prefix, row)
}

// ClearTopic returns the topic announcing a display clear.
func ClearTopic(prefix string) string {
	return prefix + "/clear"
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Display RowPayload `json:"display"`
}

// RowPayload contains one row update.
type RowPayload struct {
	Timestamp string `json:"timestamp"`
	Row       int    `json:"row"`
	Text      string `json:"text"`
}

// FormatPayload creates the JSON payload for a row update.
func FormatPayload(row int, text string, ts time.Time) ([]byte, error) {
	return json.Marshal(Payload{
		Display: RowPayload{
			Timestamp: ts.UTC().Format(time.RFC3339),
			Row:       row,
			Text:      text,
		},
	})
}
