package rowrange

import "sort"

// Entry locates one blob within a group's row-range map: it carries
// row_count[start_row, start_row+count) of the global row space.
type Entry struct {
	StartRow int
	Count    int
}

// BlobMap is a group's ordered blob-index: entry i corresponds to the
// persisted blob file numbered i. Appending is the only mutation; entries
// are never reordered or removed once written.
type BlobMap []Entry

// Append adds a new entry for a blob holding count rows immediately after
// the current total, and returns its blob number (index).
func (m *BlobMap) Append(count int) int {
	start := m.TotalRows()
	*m = append(*m, Entry{StartRow: start, Count: count})

	return len(*m) - 1
}

// TotalRows returns the sum of all entries' counts.
func (m BlobMap) TotalRows() int {
	if len(m) == 0 {
		return 0
	}

	last := m[len(m)-1]

	return last.StartRow + last.Count
}

// Contiguous reports whether the map satisfies the blob-map contiguity
// invariant: entry i's start_row equals the sum of all prior counts, and
// the first entry (if any) starts at row 0.
func (m BlobMap) Contiguous() bool {
	sum := 0
	for _, e := range m {
		if e.StartRow != sum {
			return false
		}
		sum += e.Count
	}

	return true
}

// IndexForRow returns the blob index whose range contains row, using
// binary search on StartRow. Equivalent in result to a linear scan.
func (m BlobMap) IndexForRow(row int) (int, bool) {
	if row < 0 || row >= m.TotalRows() {
		return 0, false
	}

	i := sort.Search(len(m), func(i int) bool {
		return m[i].StartRow+m[i].Count > row
	})
	if i >= len(m) || m[i].StartRow > row {
		return 0, false
	}

	return i, true
}

// Overlapping returns the sorted blob indices whose row range intersects
// [start, start+count), clamped to the map's total row count.
func (m BlobMap) Overlapping(start, count int) []int {
	if count <= 0 {
		return nil
	}

	end := start + count
	total := m.TotalRows()
	if end > total {
		end = total
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return nil
	}

	var indices []int
	for i, e := range m {
		entryEnd := e.StartRow + e.Count
		if e.StartRow < end && entryEnd > start {
			indices = append(indices, i)
		}
	}

	return indices
}
