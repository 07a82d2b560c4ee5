package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePlayerState records one observed player snapshot.
//
// Called from the snapshot store's update callback; the write is
// non-blocking, batched, and silently dropped when the sink is down;
// telemetry must never affect the control session.
//
// Parameters:
//   - remoteID: The agent instance being observed
//   - state: The playback phase ("idle", "playing", ...)
//   - volume: Current volume, 0 to 100
//   - queueLength: Number of entries in the playback queue
func (c *Client) WritePlayerState(remoteID string, state string, volume int, queueLength int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"player_state",
		map[string]string{
			"remote_id": remoteID,
			"state":     state,
		},
		map[string]interface{}{
			"volume":       volume,
			"queue_length": queueLength,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCommand records one issued transport command and whether the
// publish was accepted by the session.
func (c *Client) WriteCommand(remoteID string, op string, accepted bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"commands",
		map[string]string{
			"remote_id": remoteID,
			"op":        op,
		},
		map[string]interface{}{
			"accepted": accepted,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
