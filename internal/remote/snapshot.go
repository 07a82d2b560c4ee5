package remote

import (
	"encoding/json"
	"fmt"
	"time"
)

// PlayerState is the playback phase reported by the agent.
type PlayerState string

const (
	StateIdle         PlayerState = "idle"
	StatePlaying      PlayerState = "playing"
	StatePaused       PlayerState = "paused"
	StateStopped      PlayerState = "stopped"
	StateDisconnected PlayerState = "disconnected"
)

// valid reports whether the state is one the agent is known to broadcast.
func (s PlayerState) valid() bool {
	switch s {
	case StateIdle, StatePlaying, StatePaused, StateStopped, StateDisconnected:
		return true
	}
	return false
}

// Seconds is a track duration in seconds. The agent sends either an
// integer or a floating point number; both decode into the same type.
type Seconds float64

// Duration converts the value to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// String formats the duration as h:mm:ss, or m:ss below one hour.
func (s Seconds) String() string {
	sec := int64(s)
	if sec < 0 {
		sec = 0
	}
	minutes := sec / 60
	hours := minutes / 60
	minutes %= 60
	sec %= 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, sec)
	}
	return fmt.Sprintf("%d:%02d", minutes, sec)
}

// QueueEntry is one track in the agent's playback queue. The id is unique
// within a queue; insertion order is playback order.
type QueueEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Duration    Seconds `json:"duration"`
	WebpageURL  string  `json:"webpage_url"`
	UploaderURL string  `json:"uploader_url,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
}

// PlayerModel is the complete, self-contained representation of agent
// state at a point in time. Each valid broadcast replaces the previous
// model wholesale; fields never carry over.
type PlayerModel struct {
	Loop     bool         `json:"loop"`
	Volume   int          `json:"volume"`
	Position int          `json:"position"`
	State    PlayerState  `json:"state"`
	Queue    []QueueEntry `json:"queue"`
	Current  *QueueEntry  `json:"current"`
}

// DefaultModel is the snapshot shown before the first broadcast arrives.
func DefaultModel() PlayerModel {
	return PlayerModel{
		Loop:   true,
		Volume: 100,
		State:  StateIdle,
	}
}

// decodeModel parses a state broadcast body. A payload that parses but
// carries an unknown phase or an out-of-range volume is rejected so a
// malformed broadcast can never blank the visible state.
func decodeModel(payload []byte) (PlayerModel, error) {
	var model PlayerModel
	if err := json.Unmarshal(payload, &model); err != nil {
		return PlayerModel{}, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if !model.State.valid() {
		return PlayerModel{}, fmt.Errorf("%w: unknown player state %q", ErrDecodeFailed, model.State)
	}
	if model.Volume < 0 || model.Volume > 100 {
		return PlayerModel{}, fmt.Errorf("%w: volume %d out of range", ErrDecodeFailed, model.Volume)
	}
	return model, nil
}
