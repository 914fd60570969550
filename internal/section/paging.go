package section

// PageCount returns the number of pages needed to show n items perPage at a
// time, i.e. ceil(n/perPage). A non-positive perPage yields one page for a
// non-empty list.
func PageCount(n, perPage int) int {
	if n <= 0 {
		return 0
	}
	if perPage <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Paginate splits items into consecutive pages of perPage items. Only the
// last page may be shorter. The pages share the backing array of items.
func Paginate[T any](items []T, perPage int) [][]T {
	count := PageCount(len(items), perPage)
	if count == 0 {
		return [][]T{}
	}
	if perPage <= 0 {
		perPage = len(items)
	}

	pages := make([][]T, 0, count)
	for start := 0; start < len(items); start += perPage {
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
