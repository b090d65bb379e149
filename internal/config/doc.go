// Package config loads and validates Blossom's TOML configuration.
//
// Configuration resolves from, in order: an explicit --config path,
// ~/.config/blossom/config.toml, then ./blossom.toml. A missing file is not
// an error; defaults apply. All path fields are tilde-expanded and made
// absolute during normalization, so downstream packages never re-resolve
// paths.
package config
