// Package remote implements the control-plane protocol for a remotely
// running playback agent.
//
// This package manages:
//   - Broker connectivity over secure WebSockets with auto-reconnect
//   - Topic derivation from the remote id and access code
//   - One-way transport commands (resume, pause, skip, move, volume, ...)
//   - Reconciliation of inbound state broadcasts into a single snapshot
//
// # Architecture
//
// The client never talks to the agent directly. All traffic goes through
// a message broker on two topics scoped by the shareable link parameters:
//
//	remote client → acme_bot_remote/{remote_id}               → agent
//	agent         → acme_bot_remote_update/{remote_id}.{code} → remote client
//
// Commands are fire-and-forget; their effects are observed only through
// later state broadcasts. An empty-body publish on the state topic (the
// "poke") asks the agent to rebroadcast the current snapshot immediately.
//
// # Usage
//
//	creds, err := remote.ParseCredentials(params.ConnectionString)
//	if err != nil {
//	    return err
//	}
//	session := remote.Session{RemoteID: params.RemoteID, AccessCode: params.AccessCode}
//	store := remote.NewStore(log)
//	client := remote.NewClient(creds, cfg.Session, log)
//	player := remote.NewPlayer(client, session, store, log)
//	client.SetOnConnect(player.Bootstrap)
//	client.Activate()
//
// # Security Considerations
//
//   - The broker URL must use the wss scheme; plain ws is rejected.
//   - Login and password are stripped from the URL before it reaches the
//     transport and sent as separate authentication fields.
//   - The access code travels inside every command payload; command-topic
//     authorization is enforced by the agent, not by topic isolation.
package remote
