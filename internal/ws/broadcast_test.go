package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/progression"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newTestHub stands up a hub behind a real WebSocket endpoint and returns
// a dialer URL for it.
func newTestHub(t *testing.T, snapshot SnapshotFunc) (*Hub, string) {
	t.Helper()

	hub := NewHub(snapshot, time.Hour, zerolog.Nop())
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := hub.AddClient(conn)
		go func() {
			defer hub.RemoveClient(c)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(ts.Close)

	return hub, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading message: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshalling %s: %v", data, err)
	}
	return msg
}

func TestHub_SnapshotOnConnect(t *testing.T) {
	rec := &progression.Record{UserID: "1", XP: 125, Level: 2, LevelTitle: "Стажёр"}
	_, url := newTestHub(t, func() SnapshotPayload {
		return SnapshotPayload{Profile: rec, Session: auth.State{Status: auth.SignedIn, UserID: "1"}}
	})

	conn := dial(t, url)
	msg := readMessage(t, conn)
	if msg.Type != MsgSnapshot {
		t.Fatalf("first message type = %q, want snapshot", msg.Type)
	}

	payload := msg.Payload.(map[string]interface{})
	profile := payload["profile"].(map[string]interface{})
	if profile["xp"].(float64) != 125 {
		t.Errorf("snapshot xp = %v, want 125", profile["xp"])
	}
	session := payload["session"].(map[string]interface{})
	if session["status"] != "signed_in" {
		t.Errorf("snapshot session status = %v, want signed_in", session["status"])
	}
}

func TestHub_BroadcastEvents(t *testing.T) {
	hub, url := newTestHub(t, func() SnapshotPayload { return SnapshotPayload{} })

	conn := dial(t, url)
	readMessage(t, conn) // initial snapshot

	hub.BroadcastEvents([]progression.Event{
		{Type: progression.EventXPGranted, Amount: 75, TotalXP: 75},
	})

	msg := readMessage(t, conn)
	if msg.Type != MsgEvents {
		t.Fatalf("message type = %q, want events", msg.Type)
	}
	payload := msg.Payload.(map[string]interface{})
	events := payload["events"].([]interface{})
	if len(events) != 1 {
		t.Fatalf("events = %v, want one", events)
	}
	ev := events[0].(map[string]interface{})
	if ev["type"] != string(progression.EventXPGranted) || ev["amount"].(float64) != 75 {
		t.Errorf("event = %v", ev)
	}
}

func TestHub_BroadcastEventsSkipsEmpty(t *testing.T) {
	hub, url := newTestHub(t, func() SnapshotPayload { return SnapshotPayload{} })

	conn := dial(t, url)
	readMessage(t, conn)

	hub.BroadcastEvents(nil)
	hub.BroadcastSession(auth.State{Status: auth.SignedOut})

	// The empty cascade must not produce a frame; the next message is the
	// session transition.
	msg := readMessage(t, conn)
	if msg.Type != MsgSession {
		t.Errorf("message type = %q, want session", msg.Type)
	}
}

func TestHub_ClientCount(t *testing.T) {
	hub, url := newTestHub(t, func() SnapshotPayload { return SnapshotPayload{} })

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}

	conn := dial(t, url)
	readMessage(t, conn)
	if got := hub.ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never removed after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_FanOut(t *testing.T) {
	hub, url := newTestHub(t, func() SnapshotPayload { return SnapshotPayload{} })

	first := dial(t, url)
	second := dial(t, url)
	readMessage(t, first)
	readMessage(t, second)

	hub.BroadcastSession(auth.State{Status: auth.SignedIn, UserID: "1"})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		if msg.Type != MsgSession {
			t.Errorf("message type = %q, want session on every client", msg.Type)
		}
	}
}
