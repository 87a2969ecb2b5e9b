package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypeJoinGame  MessageType = "game:join"
	MessageTypeLeaveGame MessageType = "game:leave"

	// Server to Client
	MessageTypeJoined MessageType = "game:joined"
	MessageTypeEvent  MessageType = "event"
	MessageTypeError  MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type JoinGamePayload struct {
	GameID string `json:"gameId"`
}

// Server to Client payloads

// EventPayload wraps a named room event. Event names follow the
// "scope:action" convention (round:change, vote:stats, events:append, ...).
type EventPayload struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type JoinedPayload struct {
	GameID string `json:"gameId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
