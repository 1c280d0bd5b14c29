package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testLogger())
	go hub.Run()
	return hub
}

func registerClient(t *testing.T, hub *Hub) *Client {
	t.Helper()
	client := NewClient(hub, nil)
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() > 0 })
	return client
}

// waitFor polls until cond holds; the hub run loop applies registrations
// asynchronously.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func receiveMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("received unparseable message: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received before deadline")
	}
	return Message{}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoinAndBroadcastToRoom(t *testing.T) {
	hub := startHub(t)
	subscriber := registerClient(t, hub)
	outsider := registerClient(t, hub)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Join(subscriber, ScopeMatch, 3)
	if got := hub.RoomSize(MatchRoom(3)); got != 1 {
		t.Fatalf("expected 1 member in match room, got %d", got)
	}

	hub.BroadcastToRoom(MatchRoom(3), Message{Type: EventMatchStandings, Payload: "snapshot"})

	msg := receiveMessage(t, subscriber)
	if msg.Type != EventMatchStandings {
		t.Errorf("expected type %q, got %q", EventMatchStandings, msg.Type)
	}
	if msg.RoomID != MatchRoom(3) {
		t.Errorf("expected room %q, got %q", MatchRoom(3), msg.RoomID)
	}

	assertNoMessage(t, outsider)
}

func TestJoinSecondMatchReplacesFirst(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub)

	hub.Join(client, ScopeMatch, 1)
	hub.Join(client, ScopeMatch, 2)

	if got := hub.RoomSize(MatchRoom(1)); got != 0 {
		t.Errorf("expected old match room to be empty, got %d members", got)
	}
	if got := hub.RoomSize(MatchRoom(2)); got != 1 {
		t.Errorf("expected 1 member in new match room, got %d", got)
	}
}

func TestMatchAndGameMembershipCoexist(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub)

	hub.Join(client, ScopeMatch, 1)
	hub.Join(client, ScopeGame, 7)

	if got := hub.RoomSize(MatchRoom(1)); got != 1 {
		t.Errorf("expected match membership to survive a game join, got %d", got)
	}
	if got := hub.RoomSize(GameRoom(7)); got != 1 {
		t.Errorf("expected 1 member in game room, got %d", got)
	}
}

func TestUnregisterDiscardsMembership(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub)

	hub.Join(client, ScopeMatch, 5)
	hub.Join(client, ScopeGame, 9)

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if got := hub.RoomSize(MatchRoom(5)); got != 0 {
		t.Errorf("expected empty match room after disconnect, got %d", got)
	}
	if got := hub.RoomSize(GameRoom(9)); got != 0 {
		t.Errorf("expected empty game room after disconnect, got %d", got)
	}

	// Broadcasting to a now-empty room must be a no-op, not a panic.
	hub.BroadcastToRoom(MatchRoom(5), Message{Type: EventMatchStandings})
}

func TestJoinTriggersSnapshotCallback(t *testing.T) {
	hub := startHub(t)

	var gotScope Scope
	var gotID int
	hub.SetJoinFunc(func(client *Client, scope Scope, id int) {
		gotScope = scope
		gotID = id
		client.Enqueue([]byte(`{"type":"snapshot"}`))
	})

	client := registerClient(t, hub)
	hub.Join(client, ScopeGame, 42)

	if gotScope != ScopeGame || gotID != 42 {
		t.Errorf("join callback got (%q, %d), want (%q, %d)", gotScope, gotID, ScopeGame, 42)
	}
	msg := receiveMessage(t, client)
	if msg.Type != "snapshot" {
		t.Errorf("expected snapshot push on join, got %q", msg.Type)
	}
}

func TestBroadcastAllReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	first := registerClient(t, hub)
	second := registerClient(t, hub)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Join(first, ScopeMatch, 1)
	// second client joined nothing at all.

	hub.BroadcastAll(Message{Type: EventGamesChanged})

	for _, c := range []*Client{first, second} {
		msg := receiveMessage(t, c)
		if msg.Type != EventGamesChanged {
			t.Errorf("expected %q, got %q", EventGamesChanged, msg.Type)
		}
	}
}

func TestEnqueueSkipsFullBuffer(t *testing.T) {
	hub := startHub(t)
	client := &Client{Hub: hub, Send: make(chan []byte, 1)}

	client.Enqueue([]byte("first"))
	client.Enqueue([]byte("second")) // buffer full, must not block

	if got := string(<-client.Send); got != "first" {
		t.Errorf("expected first message to survive, got %q", got)
	}
	select {
	case raw := <-client.Send:
		t.Errorf("expected second message to be dropped, got %q", raw)
	default:
	}
}
