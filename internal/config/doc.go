// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for chatwidget.
//
// # Loading Order
//
//  1. .env in the working directory (LoadDotEnv, existing variables win)
//  2. ~/.chatwidget/config.toml, else ~/.chatwidget/config.json, else defaults
//  3. CHATWIDGET_* environment variables (VITE_API_URL is honoured for the base URL)
//  4. Command-line flags, applied by the cli package
//
// # Example config.toml
//
//	[api]
//	base_url = "http://localhost:8000"
//	timeout_secs = 60
//	rate_limit_per_minute = 0
//
//	[ui]
//	theme = "auto"
//	start_open = true
//	show_timestamps = true
//
//	[log]
//	file = "/tmp/chatwidget.log"
//	debug = false
//
// # Hot Reload
//
// Watcher re-reads the file on change; the TUI applies the new base URL,
// timeout and theme without restarting.
package config
