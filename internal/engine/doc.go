// Package engine holds the task scheduling algorithms: ordering, priority
// optimization under a time budget, deadline reminders, search, and schedule
// density.
//
// Every function is pure. It reads the task slice it is given, never
// modifies it, and keeps no state between calls, so callers may run them
// concurrently on their own snapshots.
package engine
