package remote

import "testing"

func TestTopics_Command(t *testing.T) {
	got := Topics{}.Command("c7f3a9")
	want := "acme_bot_remote/c7f3a9"
	if got != want {
		t.Errorf("Command() = %q, want %q", got, want)
	}
}

func TestTopics_StateUpdate(t *testing.T) {
	got := Topics{}.StateUpdate("c7f3a9", 482913)
	want := "acme_bot_remote_update/c7f3a9.482913"
	if got != want {
		t.Errorf("StateUpdate() = %q, want %q", got, want)
	}
}

// The command topic is shared by all sessions for the same remote id;
// only the state topic is scoped by the access code.
func TestSession_TopicDerivation(t *testing.T) {
	a := Session{RemoteID: "c7f3a9", AccessCode: 111111}
	b := Session{RemoteID: "c7f3a9", AccessCode: 222222}

	if a.CommandTopic() != b.CommandTopic() {
		t.Errorf("command topics differ for same remote id: %q vs %q", a.CommandTopic(), b.CommandTopic())
	}
	if a.StateTopic() == b.StateTopic() {
		t.Errorf("state topics collide for different access codes: %q", a.StateTopic())
	}

	c := Session{RemoteID: "other", AccessCode: 111111}
	if a.StateTopic() == c.StateTopic() {
		t.Errorf("state topics collide for different remote ids: %q", a.StateTopic())
	}
}
