// Package config loads runtime configuration for the Momento client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-m string   path of the local mirror database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "mirror_path": "momento.db",
//	  "request_timeout": "10s"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config
