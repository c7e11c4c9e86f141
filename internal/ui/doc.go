// Package ui provides the terminal reader for tao, built on Bubble Tea.
//
// # Views
//
//   - Chapter: the chapter under the session cursor, rendered as markdown
//     with glamour into a scrollable viewport.
//   - Search: a text input over the session's live query and its results.
//   - Favorites: the marked chapters in ordinal order.
//
// A help overlay lists every binding from keys.go.
//
// # Data flow
//
// The Model never loads chapters itself. app.StartLoader fills the
// library.Store in the background while the Model polls Store.Snapshot on a
// tick until the load settles, showing a loading screen (or the load error)
// in the meantime. All reader state lives in the session.Session; the Model
// only tracks presentation: the active view, list selection, and theme.
//
// Theme changes and the original-text toggle are written to prefs.toml as
// soon as they happen.
package ui
