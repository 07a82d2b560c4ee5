package remote

import (
	"fmt"
	"net/url"
)

// Credentials hold the broker endpoint and login extracted from the
// combined connection string carried by a shareable link.
//
// BrokerURL never contains user-info: login and password are stripped
// during parsing and handed to the transport as separate fields.
type Credentials struct {
	BrokerURL string
	Login     string
	Password  string
}

// ParseCredentials validates a combined broker connection string and
// splits out the embedded credentials.
//
// Validation order:
//  1. The string must parse as an absolute URL (ErrInvalidURL).
//  2. The scheme must be wss (ErrInvalidScheme).
//  3. The URL must not carry a fragment (ErrHasFragment).
func ParseCredentials(connectionString string) (Credentials, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Credentials{}, fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, connectionString)
	}
	if u.Scheme != "wss" {
		return Credentials{}, fmt.Errorf("%w: got %q", ErrInvalidScheme, u.Scheme)
	}
	if u.Fragment != "" {
		return Credentials{}, ErrHasFragment
	}

	creds := Credentials{Login: u.User.Username()}
	creds.Password, _ = u.User.Password()

	// The transport must never see embedded credentials.
	u.User = nil
	creds.BrokerURL = u.String()

	return creds, nil
}
