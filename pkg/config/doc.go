// Package config handles configuration management for modlist.
// Configuration is layered with koanf: embedded defaults, the user file,
// modlist.toml in the working directory, .env and MODLIST_* environment
// variables, and finally command-line overrides.
package config
