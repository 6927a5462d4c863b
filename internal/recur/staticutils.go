package recur

import (
	"math"
	"sort"
)

// sortedInts returns a sorted copy of list, avoiding the sort when the
// input is already ordered (the common case for parser output), matching
// StaticUtils.ListToSortedArray's needsSorting shortcut.
func sortedInts(list []int) []int {
	if list == nil {
		return nil
	}
	out := make([]int, len(list))
	needsSorting := false
	last := math.MinInt
	for i, v := range list {
		out[i] = v
		if last > v {
			needsSorting = true
		}
		last = v
	}
	if needsSorting {
		sort.Ints(out)
	}
	return out
}

// linearSearch scans array for i, returning its index or -1. Small BY-part
// sets (typically a handful of entries) are faster with a linear scan than
// a binary search or map lookup at these sizes, per spec.md §9.
func linearSearch(array []int, i int) int {
	for idx, v := range array {
		if v == i {
			return idx
		}
	}
	return -1
}

// containsInt reports whether v is present in sorted (or unsorted) small set s.
func containsInt(s []int, v int) bool {
	return linearSearch(s, v) >= 0
}
