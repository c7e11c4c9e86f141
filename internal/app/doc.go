// Package app wires configuration, logging, durable state and the session
// together and starts the reader.
//
// # Startup Sequence
//
//  1. Load config (config.Load) and build the file logger (logging.New)
//  2. Load display preferences (prefs.Load)
//  3. Resolve the content source (file path or URL)
//  4. Open the durable key-value store and read the favorites ledger
//  5. Build the session with an empty chapter store
//  6. Start the one-shot background loader (StartLoader)
//  7. Run the Bubble Tea UI, which shows "Loading..." until the store fills
//
// # Loading
//
// The chapter document is fetched exactly once. There is no retry: a failed
// load is logged and the UI keeps showing the failure for the rest of the
// session. CLI commands use Env.LoadNow instead and fail fast.
//
// # Shutdown
//
// Env.Close closes the durable store and flushes the logger. Every favorite
// toggle has already been written through, so nothing is pending at exit.
package app
