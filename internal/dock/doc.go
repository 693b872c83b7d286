// Package dock reconciles the applications the OS reports as running with
// the user's pinned dock entries, and keeps per-item badge counts fresh.
//
// All store mutation happens on one goroutine owned by the Engine's Queue.
// Lifecycle notifications and the badge timer only enqueue work; delegates
// receive value snapshots.
package dock
