// Package cmd implements the textmation subcommands for parsing,
// building, checking, and inspecting scene files.
package cmd

var (
	// CacheIdentifier names the kong variable holding the path of the
	// runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier names the kong variable holding the path of the
	// default configuration file.
	ConfigIdentifier = "config"
)
