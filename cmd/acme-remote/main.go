// acme-remote - control-plane client for a remotely running playback agent.
//
// The client attaches to one agent instance through a shareable link and
// a message broker: transport commands go out on the command topic, and
// the agent's state broadcasts are reconciled into a local snapshot. The
// console loop below stands in for a presentation layer: it reads
// commands from stdin and prints the snapshot on request.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/acme-bot/remote-core/internal/infrastructure/config"
	"github.com/acme-bot/remote-core/internal/infrastructure/influxdb"
	"github.com/acme-bot/remote-core/internal/infrastructure/logging"
	"github.com/acme-bot/remote-core/internal/link"
	"github.com/acme-bot/remote-core/internal/remote"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting acme-remote",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)

	// The shareable link fully determines the session: identity,
	// access code, and broker credentials.
	params, err := link.Parse(cfg.Link.URL)
	if err != nil {
		return fmt.Errorf("parsing shareable link: %w", err)
	}

	creds, err := remote.ParseCredentials(params.ConnectionString)
	if err != nil {
		return fmt.Errorf("parsing broker credentials: %w", err)
	}

	session := remote.Session{
		RemoteID:   params.RemoteID,
		AccessCode: params.AccessCode,
	}

	store := remote.NewStore(log.With("component", "store"))
	client := remote.NewClient(creds, cfg.Session, log.With("component", "session"))
	defer client.Close()

	player := remote.NewPlayer(client, session, store, log.With("component", "player"))
	client.SetOnConnect(player.Bootstrap)

	// Optional playback telemetry.
	var telemetry *influxdb.Client
	telemetry, err = influxdb.Connect(cfg.InfluxDB)
	switch {
	case err == nil:
		defer telemetry.Close()
		telemetry.SetOnError(func(err error) {
			log.Warn("telemetry write failed", "error", err)
		})
	case errors.Is(err, influxdb.ErrDisabled):
		telemetry = nil
	default:
		log.Warn("telemetry unavailable, continuing without it", "error", err)
		telemetry = nil
	}

	store.SetOnUpdate(func(m remote.PlayerModel) {
		log.Info("player state updated",
			"state", m.State,
			"volume", m.Volume,
			"queue_length", len(m.Queue),
		)
		if telemetry != nil {
			telemetry.WritePlayerState(session.RemoteID, string(m.State), m.Volume, len(m.Queue))
		}
	})

	client.Activate()
	log.Info("session activated",
		"remote_id", session.RemoteID,
		"command_topic", session.CommandTopic(),
	)

	record := func(op string, accepted bool) {
		if telemetry != nil {
			telemetry.WriteCommand(session.RemoteID, op, accepted)
		}
	}
	go commandLoop(ctx, os.Stdin, os.Stdout, player, record, log)

	<-ctx.Done()
	log.Info("shutting down")

	return nil
}

// getConfigPath returns the configuration file path from the environment
// or the default location.
func getConfigPath() string {
	if path := os.Getenv("ACMEREMOTE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

const consoleUsage = `commands:
  resume | pause | stop | clear | skip | prev
  loop on|off
  volume <0-100>
  play <track-id>
  remove <track-id>
  queue
  help`

// commandLoop reads console commands until stdin closes or the context is
// cancelled. Command failures are printed, not fatal: a NotConnected
// publish only affects that single attempt. Each issued command is
// reported to record for telemetry.
func commandLoop(ctx context.Context, in io.Reader, out io.Writer, player *remote.Player, record func(op string, accepted bool), log *logging.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := scanner.Text()
		err := dispatchCommand(player, out, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if fields := strings.Fields(line); len(fields) > 0 && record != nil {
			record(fields[0], err == nil)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("console input closed", "error", err)
	}
}

// dispatchCommand parses one console line and issues the matching
// transport command.
func dispatchCommand(player *remote.Player, out io.Writer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "resume":
		return player.Resume()
	case "pause":
		return player.Pause()
	case "stop":
		return player.Stop()
	case "clear":
		return player.Clear()
	case "skip":
		return player.Skip()
	case "prev":
		return player.Prev()
	case "loop":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return fmt.Errorf("usage: loop on|off")
		}
		return player.SetLoop(fields[1] == "on")
	case "volume":
		if len(fields) != 2 {
			return fmt.Errorf("usage: volume <0-100>")
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("usage: volume <0-100>")
		}
		return player.SetVolume(value)
	case "play":
		if len(fields) != 2 {
			return fmt.Errorf("usage: play <track-id>")
		}
		return player.MoveTrack(fields[1])
	case "remove":
		if len(fields) != 2 {
			return fmt.Errorf("usage: remove <track-id>")
		}
		return player.RemoveTrack(fields[1])
	case "queue":
		printSnapshot(out, player.Store().Snapshot())
		return nil
	case "help":
		fmt.Fprintln(out, consoleUsage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

// printSnapshot renders the current player snapshot to the console.
func printSnapshot(out io.Writer, m remote.PlayerModel) {
	loop := "off"
	if m.Loop {
		loop = "on"
	}
	fmt.Fprintf(out, "state=%s volume=%d loop=%s\n", m.State, m.Volume, loop)

	if m.Current != nil {
		fmt.Fprintf(out, "now playing: %s (%s) [%s]\n", m.Current.Title, m.Current.Uploader, m.Current.Duration)
	}

	if len(m.Queue) == 0 {
		fmt.Fprintln(out, "queue is empty")
		return
	}
	for i, entry := range m.Queue {
		fmt.Fprintf(out, "%3d. %-12s %s (%s) [%s]\n", i+1, entry.ID, entry.Title, entry.Uploader, entry.Duration)
	}
}
