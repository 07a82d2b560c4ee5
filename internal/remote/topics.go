package remote

import "fmt"

// Topic prefixes shared with the playback agent.
//
// The command topic intentionally has no access code: every session for
// the same remote id publishes to the same topic, and the agent
// authorizes each command by the code embedded in its payload. The state
// topic is scoped by both values so broadcasts only reach holders of the
// matching link.
const (
	// TopicPrefixCommand is the base for command topics.
	TopicPrefixCommand = "acme_bot_remote"

	// TopicPrefixState is the base for state broadcast topics.
	TopicPrefixState = "acme_bot_remote_update"
)

// Topics provides builders for remote control topic names.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// Command returns the topic the agent listens on for transport commands.
//
// Example: acme_bot_remote/c7f3a9
func (Topics) Command(remoteID string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixCommand, remoteID)
}

// StateUpdate returns the topic the agent broadcasts player state on.
//
// Example: acme_bot_remote_update/c7f3a9.482913
func (Topics) StateUpdate(remoteID string, accessCode int64) string {
	return fmt.Sprintf("%s/%s.%d", TopicPrefixState, remoteID, accessCode)
}

// Session identifies one controllable agent instance. It is constructed
// once from the parsed shareable link and never mutated.
type Session struct {
	RemoteID   string
	AccessCode int64
}

// CommandTopic returns the topic commands for this session are sent on.
func (s Session) CommandTopic() string {
	return Topics{}.Command(s.RemoteID)
}

// StateTopic returns the topic state broadcasts for this session arrive on.
func (s Session) StateTopic() string {
	return Topics{}.StateUpdate(s.RemoteID, s.AccessCode)
}
