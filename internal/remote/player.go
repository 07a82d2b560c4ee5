package remote

import (
	"encoding/json"
	"fmt"
)

// Player issues transport commands to a remote playback agent and keeps
// its state store in sync through broker broadcasts.
//
// Command methods serialize one of the ten command variants and publish
// it on the session's command topic. They return whatever the underlying
// publish returns (typically nil or ErrNotConnected) without catching or
// retrying; the caller decides whether to surface the failure.
type Player struct {
	broker  Broker
	session Session
	store   *Store

	logger Logger
}

// NewPlayer wires a command publisher and snapshot store to a broker
// session. Register Bootstrap as the client's on-connect callback to
// complete the wiring:
//
//	client.SetOnConnect(player.Bootstrap)
func NewPlayer(broker Broker, session Session, store *Store, logger Logger) *Player {
	return &Player{
		broker:  broker,
		session: session,
		store:   store,
		logger:  logger,
	}
}

// Store returns the snapshot store the player reconciles broadcasts into.
func (p *Player) Store() *Store {
	return p.store
}

// Bootstrap subscribes to the state topic and requests an immediate
// snapshot rebroadcast by publishing an empty-body poke.
//
// It runs on every successful connect and reconnect. The subscription is
// always replaced rather than checked for: after a transport-level
// reconnect the previous one is gone anyway, and replacement is the one
// policy that is correct in both cases. Both steps are best effort: a
// failure is logged but does not invalidate the connection; the UI simply
// shows the previous snapshot until the next broadcast arrives.
func (p *Player) Bootstrap() {
	topic := p.session.StateTopic()

	if err := p.broker.Subscribe(topic, p.store.HandleMessage); err != nil {
		if p.logger != nil {
			p.logger.Warn("state topic subscribe failed", "topic", topic, "error", err)
		}
		return
	}

	if err := p.broker.Publish(topic, nil); err != nil {
		if p.logger != nil {
			p.logger.Warn("snapshot poke failed", "topic", topic, "error", err)
		}
	}
}

// publish serializes a command and sends it on the command topic.
func (p *Player) publish(cmd any) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("remote: encoding command: %w", err)
	}
	return p.broker.Publish(p.session.CommandTopic(), payload)
}

// base builds the shared command fields for this session.
func (p *Player) base(op commandOp) baseCommand {
	return baseCommand{Op: op, Code: p.session.AccessCode}
}

// Resume resumes playback.
func (p *Player) Resume() error {
	return p.publish(p.base(opResume))
}

// Pause pauses playback.
func (p *Player) Pause() error {
	return p.publish(p.base(opPause))
}

// Stop stops playback.
func (p *Player) Stop() error {
	return p.publish(p.base(opStop))
}

// Clear empties the playback queue.
func (p *Player) Clear() error {
	return p.publish(p.base(opClear))
}

// Skip advances to the next track.
func (p *Player) Skip() error {
	return p.publish(p.base(opSkip))
}

// Prev returns to the previous track.
func (p *Player) Prev() error {
	return p.publish(p.base(opPrev))
}

// SetLoop enables or disables queue looping.
func (p *Player) SetLoop(enabled bool) error {
	return p.publish(loopCommand{baseCommand: p.base(opLoop), Enabled: enabled})
}

// SetVolume sets the playback volume. Values outside 0..100 fail with
// ErrInvalidVolume before anything reaches the wire.
func (p *Player) SetVolume(value int) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidVolume, value)
	}
	return p.publish(volumeCommand{baseCommand: p.base(opVolume), Value: value})
}

// MoveTrack asks the agent to play the queue entry with the given id.
//
// The entry's offset is resolved from the current snapshot at call time,
// not from a value captured when a control was rendered: the queue may
// have been reordered since by other commands or by the agent itself.
// Fails with ErrUnknownTrack when the id is no longer in the queue.
func (p *Player) MoveTrack(id string) error {
	offset, ok := p.store.IndexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	return p.publish(queueCommand{baseCommand: p.base(opMove), Offset: offset, ID: id})
}

// RemoveTrack asks the agent to drop the queue entry with the given id.
// Offset resolution follows the same call-time rule as MoveTrack.
func (p *Player) RemoveTrack(id string) error {
	offset, ok := p.store.IndexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	return p.publish(queueCommand{baseCommand: p.base(opRemove), Offset: offset, ID: id})
}
