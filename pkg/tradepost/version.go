// Package tradepost holds the release metadata of the tradepost CLI.
package tradepost

// Version is the current release. Overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/tradepost/pkg/tradepost.Version=...".
var Version = "0.1.0"
