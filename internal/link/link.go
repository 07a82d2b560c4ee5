// Package link parses shareable remote control links.
//
// A link is a URL whose query string carries everything needed to attach
// to one agent instance:
//
//	ac  — numeric access code authorizing commands for this session
//	rid — remote id of the agent instance
//	rcs — broker connection string (URL with embedded credentials),
//	      base64url-encoded without padding
//
// The parsed parameters fully determine the session identity and the
// broker credentials; package remote consumes them from there.
package link

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Query parameter names used by the agent when it mints a link.
const (
	paramAccessCode       = "ac"
	paramRemoteID         = "rid"
	paramConnectionString = "rcs"
)

// ErrMissingParam is returned when a required query parameter is absent
// or empty.
var ErrMissingParam = errors.New("link: missing query parameter")

// Params are the session parameters carried by a shareable link.
type Params struct {
	AccessCode       int64
	RemoteID         string
	ConnectionString string
}

// Parse extracts session parameters from a shareable link URL.
func Parse(rawURL string) (Params, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Params{}, fmt.Errorf("link: invalid URL: %w", err)
	}

	query := u.Query()

	code := query.Get(paramAccessCode)
	if code == "" {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParam, paramAccessCode)
	}
	accessCode, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return Params{}, fmt.Errorf("link: invalid access code %q: %w", code, err)
	}

	remoteID := query.Get(paramRemoteID)
	if remoteID == "" {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParam, paramRemoteID)
	}

	encoded := query.Get(paramConnectionString)
	if encoded == "" {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParam, paramConnectionString)
	}
	connectionString, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Params{}, fmt.Errorf("link: invalid connection string encoding: %w", err)
	}

	return Params{
		AccessCode:       accessCode,
		RemoteID:         remoteID,
		ConnectionString: string(connectionString),
	}, nil
}
