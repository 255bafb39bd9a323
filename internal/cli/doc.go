// Package cli provides the interactive TaskFlow command-line client.
//
// It wires configuration, the SQLite-backed session store, the mock user
// collection, the task database and the page controllers of package views,
// then runs a REPL that renders those pages as text.
//
// Key features:
//   - Login / Signup / Logout, email verification and password reset flows
//   - Dashboard, Today, Upcoming and Completed task views
//   - Add, edit, complete and delete tasks from any task view
//
// On start the REPL restores a persisted session, so a user who logged in
// during an earlier run is still signed in. The REPL is started via
// App.Run(ctx), which blocks until the user exits.
package cli
