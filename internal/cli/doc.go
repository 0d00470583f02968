// Package cli is the interactive shell of the recycle tracker.
//
// It reads commands line by line, asks for any further input with prompts
// and prints results and notifications to its output. All state lives in
// the session, pickup, ledger and rewards components; the shell only reads
// it or triggers operations.
package cli
