package mqtt

import "log"

// bufferedMsg stores a serialized display update for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
	clear    bool // announces a display clear
}

// rowQueue holds display updates made while disconnected, oldest first.
// A remote panel only needs the final content of each row, so a newer
// update replaces any queued one for the same topic and a clear drops
// everything queued before it.
// Not safe for concurrent use; caller must synchronize.
type rowQueue struct {
	msgs     []bufferedMsg
	capacity int
	overflow bool // true if any update was dropped since last drain
}

func newRowQueue(capacity int) *rowQueue {
	return &rowQueue{
		msgs:     make([]bufferedMsg, 0, capacity),
		capacity: capacity,
	}
}

func (q *rowQueue) push(msg bufferedMsg) {
	if msg.clear {
		q.msgs = q.msgs[:0]
	} else {
		q.remove(msg.topic)
	}

	if len(q.msgs) == q.capacity {
		if !q.overflow {
			log.Printf("mqtt: display queue full (%d updates), dropping oldest", q.capacity)
			q.overflow = true
		}
		copy(q.msgs, q.msgs[1:])
		q.msgs = q.msgs[:len(q.msgs)-1]
	}
	q.msgs = append(q.msgs, msg)
}

// remove drops the queued update for topic, keeping the order of the rest.
func (q *rowQueue) remove(topic string) {
	for i, m := range q.msgs {
		if m.topic == topic {
			q.msgs = append(q.msgs[:i], q.msgs[i+1:]...)
			return
		}
	}
}

func (q *rowQueue) drainAll() []bufferedMsg {
	if len(q.msgs) == 0 {
		return nil
	}
	out := make([]bufferedMsg, len(q.msgs))
	copy(out, q.msgs)
	q.msgs = q.msgs[:0]
	q.overflow = false
	return out
}

func (q *rowQueue) len() int {
	return len(q.msgs)
}
