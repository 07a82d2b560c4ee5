package remote

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

// fakeBroker records publishes and subscriptions in call order.
type fakeBroker struct {
	mu    sync.Mutex
	calls []brokerCall

	publishErr   error
	subscribeErr error
}

type brokerCall struct {
	op      string // "publish" or "subscribe"
	topic   string
	payload []byte
	handler MessageHandler
}

func (f *fakeBroker) Publish(topic string, payload []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, brokerCall{op: "publish", topic: topic, payload: payload})
	return nil
}

func (f *fakeBroker) Subscribe(topic string, handler MessageHandler) error {
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, brokerCall{op: "subscribe", topic: topic, handler: handler})
	return nil
}

func (f *fakeBroker) recorded() []brokerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]brokerCall(nil), f.calls...)
}

func testPlayer(broker Broker) *Player {
	session := Session{RemoteID: "c7f3a9", AccessCode: 482913}
	return NewPlayer(broker, session, NewStore(nil), nil)
}

func TestPlayer_BootstrapSubscribesThenPokes(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	player.Bootstrap()

	calls := broker.recorded()
	if len(calls) != 2 {
		t.Fatalf("got %d broker calls, want 2", len(calls))
	}

	stateTopic := "acme_bot_remote_update/c7f3a9.482913"
	if calls[0].op != "subscribe" || calls[0].topic != stateTopic {
		t.Errorf("first call = %s %q, want subscribe %q", calls[0].op, calls[0].topic, stateTopic)
	}
	if calls[1].op != "publish" || calls[1].topic != stateTopic {
		t.Errorf("second call = %s %q, want publish %q", calls[1].op, calls[1].topic, stateTopic)
	}
	if len(calls[1].payload) != 0 {
		t.Errorf("poke payload = %q, want empty body", calls[1].payload)
	}
}

func TestPlayer_BootstrapSubscribeFailureSkipsPoke(t *testing.T) {
	broker := &fakeBroker{subscribeErr: ErrNotConnected}
	player := testPlayer(broker)

	// Best effort: the failure is not fatal and nothing reaches the wire.
	player.Bootstrap()

	if calls := broker.recorded(); len(calls) != 0 {
		t.Errorf("got %d broker calls after failed subscribe, want 0", len(calls))
	}
}

func TestPlayer_BootstrapWiresStoreHandler(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	player.Bootstrap()

	calls := broker.recorded()
	if len(calls) == 0 || calls[0].handler == nil {
		t.Fatal("no handler registered on the state topic")
	}

	calls[0].handler([]byte(`{"loop": false, "volume": 30, "position": 0, "state": "playing", "queue": [], "current": null}`))

	if m := player.Store().Snapshot(); m.State != StatePlaying || m.Volume != 30 {
		t.Errorf("snapshot not updated through subscription handler: %+v", m)
	}
}

func TestPlayer_CommandWireFormat(t *testing.T) {
	tests := []struct {
		name   string
		issue  func(p *Player) error
		extras map[string]any
	}{
		{"resume", func(p *Player) error { return p.Resume() }, nil},
		{"pause", func(p *Player) error { return p.Pause() }, nil},
		{"stop", func(p *Player) error { return p.Stop() }, nil},
		{"clear", func(p *Player) error { return p.Clear() }, nil},
		{"skip", func(p *Player) error { return p.Skip() }, nil},
		{"prev", func(p *Player) error { return p.Prev() }, nil},
		{"loop", func(p *Player) error { return p.SetLoop(true) }, map[string]any{"enabled": true}},
		{"volume", func(p *Player) error { return p.SetVolume(57) }, map[string]any{"value": float64(57)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := &fakeBroker{}
			player := testPlayer(broker)

			if err := tt.issue(player); err != nil {
				t.Fatalf("command error = %v", err)
			}

			calls := broker.recorded()
			if len(calls) != 1 {
				t.Fatalf("got %d broker calls, want 1", len(calls))
			}
			if calls[0].topic != "acme_bot_remote/c7f3a9" {
				t.Errorf("topic = %q, want %q", calls[0].topic, "acme_bot_remote/c7f3a9")
			}

			var payload map[string]any
			if err := json.Unmarshal(calls[0].payload, &payload); err != nil {
				t.Fatalf("payload is not valid JSON: %v", err)
			}
			if payload["op"] != tt.name {
				t.Errorf("op = %v, want %q", payload["op"], tt.name)
			}
			if payload["code"] != float64(482913) {
				t.Errorf("code = %v, want 482913", payload["code"])
			}
			for key, want := range tt.extras {
				if payload[key] != want {
					t.Errorf("%s = %v, want %v", key, payload[key], want)
				}
			}
			wantFields := 2 + len(tt.extras)
			if len(payload) != wantFields {
				t.Errorf("payload has %d fields, want %d: %s", len(payload), wantFields, calls[0].payload)
			}
		})
	}
}

func TestPlayer_SetVolumeRange(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	for _, value := range []int{-1, 101} {
		if err := player.SetVolume(value); !errors.Is(err, ErrInvalidVolume) {
			t.Errorf("SetVolume(%d) error = %v, want ErrInvalidVolume", value, err)
		}
	}
	if calls := broker.recorded(); len(calls) != 0 {
		t.Errorf("invalid volume reached the wire: %d calls", len(calls))
	}
}

func TestPlayer_PublishErrorPropagates(t *testing.T) {
	broker := &fakeBroker{publishErr: ErrNotConnected}
	player := testPlayer(broker)

	if err := player.Resume(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Resume() error = %v, want ErrNotConnected", err)
	}
}

// queueBroadcast builds a state broadcast with the given queue ids.
func queueBroadcast(ids ...string) []byte {
	entries := make([]QueueEntry, len(ids))
	for i, id := range ids {
		entries[i] = QueueEntry{ID: id, Title: id, Uploader: "up", Duration: 1, WebpageURL: "u"}
	}
	payload, _ := json.Marshal(PlayerModel{
		Loop:   true,
		Volume: 100,
		State:  StatePlaying,
		Queue:  entries,
	})
	return payload
}

// Offsets are resolved from the queue as it is when the command is
// issued, not as it was when a control was rendered.
func TestPlayer_MoveResolvesOffsetAtCallTime(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	player.Store().HandleMessage(queueBroadcast("a", "b", "c"))

	// Concurrent reorder before the click is processed.
	player.Store().HandleMessage(queueBroadcast("b", "a", "c"))

	if err := player.MoveTrack("a"); err != nil {
		t.Fatalf("MoveTrack() error = %v", err)
	}

	calls := broker.recorded()
	if len(calls) != 1 {
		t.Fatalf("got %d broker calls, want 1", len(calls))
	}

	var payload map[string]any
	if err := json.Unmarshal(calls[0].payload, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["op"] != "move" || payload["id"] != "a" {
		t.Errorf("payload = %s", calls[0].payload)
	}
	if payload["offset"] != float64(1) {
		t.Errorf("offset = %v, want 1 (resolved after reorder)", payload["offset"])
	}
}

func TestPlayer_RemoveWireFormat(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	player.Store().HandleMessage(queueBroadcast("a", "b", "c"))

	if err := player.RemoveTrack("c"); err != nil {
		t.Fatalf("RemoveTrack() error = %v", err)
	}

	calls := broker.recorded()
	var payload map[string]any
	if err := json.Unmarshal(calls[0].payload, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["op"] != "remove" || payload["offset"] != float64(2) || payload["id"] != "c" {
		t.Errorf("payload = %s", calls[0].payload)
	}
	if payload["code"] != float64(482913) {
		t.Errorf("code = %v, want 482913", payload["code"])
	}
}

func TestPlayer_MoveUnknownTrack(t *testing.T) {
	broker := &fakeBroker{}
	player := testPlayer(broker)

	player.Store().HandleMessage(queueBroadcast("a"))

	if err := player.MoveTrack("gone"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("MoveTrack() error = %v, want ErrUnknownTrack", err)
	}
	if err := player.RemoveTrack("gone"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("RemoveTrack() error = %v, want ErrUnknownTrack", err)
	}
	if calls := broker.recorded(); len(calls) != 0 {
		t.Errorf("unknown track command reached the wire: %d calls", len(calls))
	}
}
