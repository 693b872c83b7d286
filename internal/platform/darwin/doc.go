// Package darwin provides the macOS dock backends. Process, icon and badge
// queries run JavaScript for Automation through osascript; preferences are
// read with defaults(1); launches go through open(1).
//
// Only the provider registration is restricted to darwin, so the parsing
// code is tested on every platform.
package darwin
