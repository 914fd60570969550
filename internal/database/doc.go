// Package database provides SQLite-based storage for arccms.
//
// This package implements the HistoryDB, which stores:
//   - Section resolution outcomes, including the resolved view model
//   - Snapshots of the home page (id, title, body hash, block counts)
//
// The history answers questions the CMS itself cannot: when did a section
// start falling back, and which blocks changed between two publishes.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// history is local to one machine, fits in a single file, and the
// CGO-free driver keeps cross-compilation trivial. WAL mode lets the
// preview server read while a resolve run writes.
package database
