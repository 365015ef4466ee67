// Package dev provides the watch mode of `pagetree serve --watch`.
//
// This package implements:
//   - Watcher: fsnotify based recursive watch of the pages directory
//   - ReloadHub: WebSocket fan-out of rebuild results to browsers
//
// # Architecture
//
//	Watcher ──debounced paths──▶ Server.Rebuild ──OnRebuild──▶ ReloadHub ──▶ browsers
//
// Bursts of file events (an editor writing a temp file and renaming it, a
// git checkout touching many pages) are debounced into one callback.
//
// # Reload Protocol
//
// Browsers connect to /__dev/ws. Messages are JSON-encoded:
//
//	{"type": "routes", "count": 12}   // the tree was rebuilt with 12 routes
//	{"type": "error", "error": "..."} // the rebuild failed; the old tree is kept
//
// A newly connected client receives the last message right away.
package dev
