package remote

// Wire format for transport commands. Every variant carries the access
// code; the agent authorizes commands by that code, not by topic
// isolation. Commands are one-way; no reply arrives on the command
// channel, and effects are observed through later state broadcasts.

type commandOp string

const (
	opResume commandOp = "resume"
	opPause  commandOp = "pause"
	opStop   commandOp = "stop"
	opClear  commandOp = "clear"
	opSkip   commandOp = "skip"
	opPrev   commandOp = "prev"
	opLoop   commandOp = "loop"
	opVolume commandOp = "volume"
	opMove   commandOp = "move"
	opRemove commandOp = "remove"
)

// baseCommand is shared by all ten command variants.
type baseCommand struct {
	Op   commandOp `json:"op"`
	Code int64     `json:"code"`
}

// loopCommand toggles queue looping.
type loopCommand struct {
	baseCommand
	Enabled bool `json:"enabled"`
}

// volumeCommand sets the playback volume, 0 to 100.
type volumeCommand struct {
	baseCommand
	Value int `json:"value"`
}

// queueCommand reorders or removes a queue entry. The offset is the
// entry's index in the queue at the time the command was built; the id
// lets the agent reject the command if the queue shifted since.
type queueCommand struct {
	baseCommand
	Offset int    `json:"offset"`
	ID     string `json:"id"`
}
