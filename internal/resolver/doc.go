// Package resolver turns CMS pages into section view models.
//
// A section is declared once as a Spec: the document it reads (home page or
// site settings), a default view model, and a list of fields. Each field
// names a block type, says whether the block is a singleton or repeatable,
// maps a raw block value to a typed item and stores it in the view model.
//
// Resolution never fails. The caller always receives a usable view model
// inside a Result tagged ok or fallback, with the reason for a fallback
// (transport, http_status, malformed, not_found, no_content, canceled).
// Rendering code can then decide whether to show a degraded-content hint
// instead of guessing from logs.
//
// # Selection rules
//
//   - Singleton field: the first block in body order that maps; the default
//     is kept when none does. More than one candidate is logged as a warning.
//   - Repeatable field: every block that maps, in body order; the default
//     list is kept when none does.
//   - A Result is ok when at least one field matched, fallback otherwise.
//
// # Cancellation
//
// Resolve honours its context. A cancelled context yields a fallback with
// reason canceled as soon as the fetch returns, and ResolveAll leaves no
// goroutine behind.
package resolver
