// Package file provides the TOML configuration store.
// Settings live in config.toml inside the etis config directory.
package file
