package notify

import (
	"encoding/json"
	"testing"
	"time"

	"gigspace/models"
)

func TestHubRegisterNotifyUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client in f1's room
	client := &Client{
		Send: make(chan []byte, 10),
		Room: UserRoom("f1"),
	}

	hub.register <- client

	event := models.HiredNotification{
		GigTitle: "Build a landing page",
		GigID:    "g1",
		Budget:   500,
		Message:  "Congratulations!",
	}
	hub.Notify("f1", event)

	select {
	case got := <-client.Send:
		var decoded models.HiredNotification
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if decoded != event {
			t.Fatalf("expected %+v, got %+v", event, decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notification")
	}

	hub.Unregister(client)
}

func TestUnregisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		Send: make(chan []byte, 1),
		Room: UserRoom("f1"),
	}
	hub.register <- client
	hub.Stop()

	finished := make(chan struct{})
	go func() {
		hub.Unregister(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("unregister blocked after hub stop")
	}
}

func TestHubNotifyOtherRoomNotDelivered(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: UserRoom("f1"),
	}
	hub.register <- client

	hub.Notify("f2", models.HiredNotification{GigID: "g1"})

	select {
	case got := <-client.Send:
		t.Fatalf("unexpected delivery to f1: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
