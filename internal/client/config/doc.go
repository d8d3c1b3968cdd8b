// Package config loads runtime configuration for the NexusPost CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:5000)
//	-d string   session database path (default nexuspost.db)
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
//	{
//	  "server_base_url": "https://api.nexuspost.example",
//	  "session_db_path": "/home/me/.nexuspost.db",
//	  "log_level": "debug"
//	}
//
// Keys that are absent from the file keep their earlier value.
package config
