// Package config loads, normalizes, and validates showtag configuration.
//
// Configuration lives in a TOML file (default ~/.config/showtag/config.toml)
// decoded over built-in defaults, with a small set of environment overrides
// applied afterwards (SHOWTAG_* variables, for values like the MusicBrainz
// user agent that users prefer to keep out of config files). All path fields
// are tilde-expanded before validation.
package config
