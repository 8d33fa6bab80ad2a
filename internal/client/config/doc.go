// Package config loads runtime configuration for the seekauth client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//  4. A positional argument, if given, replaces ServerURL.
//
// Supported flags
//
//	-u string   check endpoint URL
//	-f string   machine id file
//	-H string   auth header name
//	-w int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5000/check",
//	  "machine_id_file": ".machine_id",
//	  "request_timeout": "10s"
//	}
package config
