package pagination

import "slices"

// Page is one bounded slice of an ordered, filtered snapshot plus navigation metadata.
type Page[T any] struct {
	Items    []T
	Total    int
	PageSize int
	// NextCursor is set iff HasNext.
	NextCursor *string
	// PrevCursor is set iff HasPrev. The empty token points at the first page.
	PrevCursor *string
	HasNext    bool
	HasPrev    bool
	// CursorReset reports that a non-empty cursor could not be resolved
	// (malformed, or its anchor left the result set) and the page restarted at the top.
	CursorReset bool
}

// Window cuts one page of size out of sorted, which must already be ordered by Compare.
// The cursor names the last record of the previous page; the page starts right after it.
// An unresolvable cursor falls back to the first page and sets CursorReset.
func Window[T any](sorted []T, key func(T) Key, cursor string, size int) Page[T] {
	total := len(sorted)

	start, resolved := 0, false
	if anchor, ok := DecodeCursor(cursor); ok {
		if k, found := slices.BinarySearchFunc(sorted, anchor, func(item T, target Key) int {
			return Compare(key(item), target)
		}); found {
			start, resolved = k+1, true
		}
	}

	end := min(start+size, total)
	items := make([]T, 0, max(end-start, 0))
	if start < end {
		items = append(items, sorted[start:end]...)
	}

	page := Page[T]{
		Items:       items,
		Total:       total,
		PageSize:    size,
		HasNext:     end < total && len(items) > 0,
		HasPrev:     start > 0,
		CursorReset: cursor != "" && !resolved,
	}
	if page.HasNext {
		next := EncodeCursor(key(items[len(items)-1]))
		page.NextCursor = &next
	}
	if page.HasPrev {
		// The previous page starts size positions back; its cursor is the record before that.
		prev := ""
		if prevStart := start - size; prevStart > 0 {
			prev = EncodeCursor(key(sorted[prevStart-1]))
		}
		page.PrevCursor = &prev
	}
	return page
}
