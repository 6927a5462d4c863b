package recur

import "sort"

// InstanceSet is a growable, sortable sequence of packed instances with
// cursor semantics, corresponding to the original's LongArray. It is
// owned by a single stage and reused across pulls: Clear resets it without
// reallocating the backing array.
type InstanceSet struct {
	items  []Instance
	cursor int
}

// NewInstanceSet returns an empty set ready for appends.
func NewInstanceSet() *InstanceSet {
	return &InstanceSet{}
}

// Append adds an instance to the end of the set. Duplicates are permitted;
// callers upstream are responsible for collapsing them if required.
func (s *InstanceSet) Append(i Instance) {
	s.items = append(s.items, i)
}

// Clear empties the set and resets the cursor, retaining the backing array.
func (s *InstanceSet) Clear() {
	s.items = s.items[:0]
	s.cursor = 0
}

// Sort orders the set ascending and resets the cursor to the start. Once
// sorted, HasNext/Next walk the set in non-decreasing order.
func (s *InstanceSet) Sort() {
	sort.Slice(s.items, func(a, b int) bool { return s.items[a] < s.items[b] })
	s.cursor = 0
}

// Len reports the number of instances currently held.
func (s *InstanceSet) Len() int { return len(s.items) }

// HasNext reports whether Next has more instances to return.
func (s *InstanceSet) HasNext() bool { return s.cursor < len(s.items) }

// Next advances the cursor and returns the instance it pointed to. It must
// only be called when HasNext is true.
func (s *InstanceSet) Next() Instance {
	v := s.items[s.cursor]
	s.cursor++
	return v
}

// At returns the instance at position idx without moving the cursor, used
// by BYSETPOS to select by position after a batch sort.
func (s *InstanceSet) At(idx int) Instance { return s.items[idx] }
