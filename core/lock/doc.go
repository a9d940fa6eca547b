// Package lock provides the process level run lock.
//
// A prepare run rewrites the archived responses and the snapshot file inside the data
// directory. RunLock uses an advisory file lock so a second run, from another CLI
// invocation or the HTTP server, fails fast instead of interleaving writes.
package lock
