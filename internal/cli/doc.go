// Package cli defines the tao command tree. Every command opens its own
// session through the app package; output is text or, with --format json,
// one JSON envelope per invocation.
package cli
