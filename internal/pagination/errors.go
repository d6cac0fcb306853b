// Package pagination is the cursor-based listing engine: filter predicates,
// the deterministic (created_at, id) ordering, opaque cursors and page windows.
// It only reads snapshots handed over by a store and never mutates records.
package pagination

import "errors"

// ErrInvalidArgument marks requests the engine refuses to evaluate,
// such as a page size below one or a headcount range with min > max.
var ErrInvalidArgument = errors.New("invalid argument")
