package ws

import (
	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/progression"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgEvents   MessageType = "events"
	MsgSession  MessageType = "session"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// SnapshotPayload is the full client-facing state, sent on connect and on
// the periodic resync tick.
type SnapshotPayload struct {
	Profile *progression.Record `json:"profile"`
	Session auth.State          `json:"session"`
}

// EventsPayload carries one mutation's event cascade, in order.
type EventsPayload struct {
	Events []progression.Event `json:"events"`
}

// SessionPayload carries a session state transition.
type SessionPayload struct {
	Session auth.State `json:"session"`
}
