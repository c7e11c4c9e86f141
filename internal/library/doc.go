// Package library holds the chapter collection for a reading session.
//
// # Overview
//
// A content document is a JSON array of chapter objects:
//
//	[
//	  {
//	    "chapter_number": 1,
//	    "title": "The Way",
//	    "original_text": "...",
//	    "modern_translation": "...",
//	    "modern_interpretation": "...",
//	    "keywords": ["Way", "Name"]
//	  }
//	]
//
// Decode validates the document against that shape before anything is
// exposed: unknown or missing fields, wrong types, ordinals outside
// [MinOrdinal, MaxOrdinal], duplicate ordinals and trailing data all fail.
// A collection does not have to be complete; a document with fewer than 81
// chapters loads fine.
//
// # Store
//
// Store is the per-session holder. Load runs once. On success the Collection
// becomes visible atomically; on failure the store stays unloaded for good and
// Snapshot reports the *LoadError. There is no retry.
//
// Reads take an RWMutex so the UI can poll Snapshot while a background loader
// is still fetching.
package library
