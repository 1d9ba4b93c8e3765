package chat

import (
	"encoding/json"
	"testing"
	"time"

	"savora/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "room1",
	}

	hub.register <- client

	msg := outboundPayload{Action: "chat", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "room1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 10), Room: "room1"}
	other := &Client{Send: make(chan []byte, 10), Room: "room2"}
	hub.register <- inRoom
	hub.register <- other

	data := []byte(`{"action":"chat","content":"scoped"}`)
	hub.broadcast <- broadcastMsg{Room: "room1", Data: data}

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in room1")
	}

	select {
	case got := <-other.Send:
		t.Fatalf("room2 client received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// zero buffer and nobody receiving: the broadcast cannot be delivered
	slow := &Client{Send: make(chan []byte), Room: "room1"}
	healthy := &Client{Send: make(chan []byte, 10), Room: "room1"}
	hub.register <- slow
	hub.register <- healthy

	hub.broadcast <- broadcastMsg{Room: "room1", Data: []byte("x")}

	// a second broadcast can only reach the healthy client; draining both
	// messages from it proves the first fan-out finished and dropped slow
	hub.broadcast <- broadcastMsg{Room: "room1", Data: []byte("y")}
	for i := 0; i < 2; i++ {
		select {
		case <-healthy.Send:
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for broadcast")
		}
	}

	select {
	case _, open := <-slow.Send:
		if open {
			t.Fatal("slow client received a message instead of being dropped")
		}
	default:
		t.Fatal("expected send channel to be closed")
	}
}

func TestQueueHistoryOldestFirstThenHubOwnsChannel(t *testing.T) {
	client := &Client{Send: make(chan []byte, 10), Room: "room1"}

	now := time.Now()
	// newest first, the order the store returns them in
	history := []models.Message{
		{ID: primitive.NewObjectID(), ChatID: "room1", UserID: "u1", Text: "third", CreatedAt: now},
		{ID: primitive.NewObjectID(), ChatID: "room1", UserID: "u2", Text: "second", CreatedAt: now.Add(-time.Minute)},
		{ID: primitive.NewObjectID(), ChatID: "room1", UserID: "u1", Text: "first", CreatedAt: now.Add(-2 * time.Minute)},
	}
	queueHistory(client, history)

	for _, want := range []string{"first", "second", "third"} {
		var out outboundPayload
		select {
		case data := <-client.Send:
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for queued message")
		}
		if out.Content != want {
			t.Fatalf("expected %q, got %q", want, out.Content)
		}
	}

	// after registration the hub is the only writer and the only closer
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	hub.register <- client
	hub.unregister <- client

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("unexpected message after unregister")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
