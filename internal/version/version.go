// Package version holds the CLI version string.
package version

// Version is the semantic version of the memex CLI and SDK.
const Version = "0.1.0"
