// Package config loads psychat configuration.
//
// Configuration is read from psychat.toml, then overridden by PSYCHAT_*
// environment variables. Every field has a default, so a missing default
// file is not an error.
//
// # Configuration File Structure
//
//	[server]
//	address = ":8080"
//	shutdown_timeout = "15s"
//	read_header_timeout = "5s"
//	static_dir = "frontend/dist"
//
//	[websocket]
//	read_buffer_size = 4096
//	write_buffer_size = 4096
//	max_message_size = 4096
//	write_timeout = "10s"
//	allowed_origins = ["https://psychat.example"]
//
//	[logging]
//	level = "info"     # debug, info, warn, error
//	format = "text"    # text, json
//
//	[metrics]
//	enabled = true
//	namespace = "psychat"
//
//	[tracing]
//	enabled = true
//	tracer_name = "psychat"
package config
