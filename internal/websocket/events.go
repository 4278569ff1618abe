package websocket

import "encoding/json"

// Event определяет типы событий протокола
type Event string

const (
	// Клиент -> сервер
	EventJoinGroup   Event = "join-group"
	EventSendMessage Event = "send-message"
	EventTypingStart Event = "typing-start"
	EventTypingStop  Event = "typing-stop"

	// Сервер -> клиент
	EventJoinSuccess    Event = "join-success"
	EventJoinError      Event = "join-error"
	EventChatHistory    Event = "chat-history"
	EventNewMessage     Event = "new-message"
	EventMessageError   Event = "message-error"
	EventUserJoined     Event = "user-joined"
	EventUserLeft       Event = "user-left"
	EventUserTyping     Event = "user-typing"
	EventUserStopTyping Event = "user-stop-typing"
	EventGroupClosed    Event = "group-closed"
)

// Envelope - обертка для всех сообщений по сокету
type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MarshalEvent собирает готовый к отправке конверт события
func MarshalEvent(event Event, data interface{}) ([]byte, error) {
	env := Envelope{Event: event}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = jsonData
	}

	return json.Marshal(env)
}
