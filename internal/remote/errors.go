package remote

import "errors"

// Domain-specific errors for remote control sessions.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidURL is returned when the broker connection string is not
	// an absolute URL.
	ErrInvalidURL = errors.New("remote: invalid broker URL")

	// ErrInvalidScheme is returned when the broker URL does not use the
	// wss scheme.
	ErrInvalidScheme = errors.New("remote: broker URL must use the wss scheme")

	// ErrHasFragment is returned when the broker URL carries a fragment.
	ErrHasFragment = errors.New("remote: broker URL cannot contain a fragment")

	// ErrNotConnected is returned when attempting to publish or subscribe
	// on a session that is not currently connected. It is never retried
	// automatically; the caller decides whether to surface it.
	ErrNotConnected = errors.New("remote: session not connected")

	// ErrInvalidVolume is returned for volume values outside 0..100.
	ErrInvalidVolume = errors.New("remote: volume must be between 0 and 100")

	// ErrUnknownTrack is returned when a queue command names a track id
	// that is no longer present in the current snapshot.
	ErrUnknownTrack = errors.New("remote: track not found in queue")

	// ErrDecodeFailed is returned when an inbound state broadcast cannot
	// be decoded. The previously stored snapshot is retained.
	ErrDecodeFailed = errors.New("remote: invalid state broadcast")
)
