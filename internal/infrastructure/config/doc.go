// Package config provides configuration loading for the remote client.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by ACMEREMOTE_* environment variables. The
// result is validated before use.
//
// The only required value is link.url, the shareable link produced by
// the playback agent, which embeds the access code, remote id, and the
// broker connection string (including broker credentials). Nothing
// deployment-specific is baked into the binary.
//
//	link:
//	  url: "https://example.com/remote?ac=482913&rid=c7f3a9&rcs=..."
//	session:
//	  connect_timeout: 10   # seconds
//	  keep_alive: 60        # seconds
//	  reconnect:
//	    initial_delay: 1    # seconds
//	    max_delay: 60       # seconds
//	influxdb:
//	  enabled: false
//	logging:
//	  level: "info"         # debug, info, warn, error
//	  format: "json"        # json, text
//	  output: "stdout"      # stdout, stderr
package config
