// Package config loads the reader's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tao/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	content = "~/.local/share/tao/tao_te_ching_complete.json"
//	fetch_timeout_seconds = 5
//	store = "file"          # file, sqlite or memory
//	store_path = "~/.local/state/tao/store.json"
//	log_file = "~/.local/state/tao/tao.log"
//	log_level = "info"
//
// Every field is optional. content may be a file path or an http(s) URL;
// paths get tilde expansion and are made absolute, URLs are left alone. When
// store_path is omitted the default file name follows the backend
// (store.json or store.db).
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors and unknown store backends. A missing file is not an error.
package config
