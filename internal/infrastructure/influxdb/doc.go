// Package influxdb provides an optional telemetry sink for observed
// playback state.
//
// The remote client is a pure observer of the agent: every state
// broadcast it decodes can also be recorded as a time-series point
// (playback phase, volume, queue depth), giving the link holder a
// history of what the agent was doing. Telemetry is disabled by default
// and is strictly write-only: it never feeds back into session state,
// and session state is never restored from it.
//
// # Usage
//
//	telemetry, err := influxdb.Connect(cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // run without telemetry
//	}
//	store.SetOnUpdate(func(m remote.PlayerModel) {
//	    telemetry.WritePlayerState(session.RemoteID, string(m.State), m.Volume, len(m.Queue))
//	})
package influxdb
