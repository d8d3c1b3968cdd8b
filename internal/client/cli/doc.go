// Package cli provides the interactive NexusPost command-line client.
//
// It wires configuration, the local session store, the API services and an
// interactive REPL. The REPL moves between three routes:
//
//   - login: register / login
//   - dashboard: provider keys, post generation, copy and download
//   - history: list, show, delete and export earlier posts
//
// Dashboard and history commands sit behind a guard: without a cached token
// the user is told to log in and sent back to the login route.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
