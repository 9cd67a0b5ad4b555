// Package io reads timeline records from files and writes normalized
// entries back out.
//
// # Formats
//
// Three encodings are understood, chosen by file extension in [Import] and
// [Export]:
//
//   - JSON (.json): either a bare array of records or an object with an
//     "entries" array
//   - YAML (.yaml, .yml): the same two shapes
//   - CSV (.csv): a header row naming the time, title and message columns
//     (in any order, case-insensitive), then one record per row
//
// A record has three fields:
//
//	[
//	  {"time": "1997-08-02T01:12:00", "title": "Company A", "message": "Switched versions:\nv0.0.1 to v1.0.1"},
//	  {"time": "1937-08-14T01:12:00", "title": "Company B", "message": "Switched versions:\nv0.0.1 to v2.0.1"}
//	]
//
// # Validation
//
// Readers only decode. A field left out of a record (or a CSV row too short
// to reach a column) comes back as a missing field in [entry.Record], and
// [entry.Normalize] reports it as MALFORMED_ENTRY with the record's index.
// Syntax errors in the document itself are INVALID_INPUT.
//
// # Export
//
// [WriteJSON], [WriteYAML] and [WriteCSV] write entries in a form the
// matching reader accepts, so a file checked and exported by the CLI reads
// back to the same entries.
package io
