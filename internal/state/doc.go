// Package state manages pending edit sessions.
//
// A session holds the edited import list of one archive between commands,
// so that `import`, `mv` and `rm` can be run one at a time before `save`.
// Sessions are persisted as JSON files in the sessions directory under the
// mapimp root.
//
// Key concepts:
//   - Session: the archive path, its kind, and the edited entry list
//   - SessionID: unique identifier derived from the archive's absolute path
//   - SessionStore: interface for persisting and loading sessions
package state
