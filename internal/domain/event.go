package domain

import "encoding/json"

// Real-time channel event names.
const (
	EventLoadHistory = "load_history"
	EventNewMessage  = "new_message"
	EventSendMessage = "send_message"
)

// Event is the frame exchanged over the real-time channel.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// SendMessagePayload is what a peer sends to post text.
type SendMessagePayload struct {
	Content string `json:"content"`
}

func NewEvent(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Name: name, Data: raw}, nil
}

func NewLoadHistoryEvent(history []Message) (Event, error) {
	if history == nil {
		history = []Message{}
	}
	return NewEvent(EventLoadHistory, history)
}

func NewMessageEvent(msg Message) (Event, error) {
	return NewEvent(EventNewMessage, msg)
}
