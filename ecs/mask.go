package ecs

import "math/bits"

const (
	maskWords   = 4
	bitsPerWord = 64

	// MaxComponents is the number of distinct component types a single
	// ComponentRegistry supports.
	MaxComponents = maskWords * bitsPerWord
)

// mask is a fixed-width bitset over ComponentIDs. Archetypes are keyed by
// their mask, so mask must stay a comparable array type.
type mask [maskWords]uint64

func (m mask) has(id ComponentID) bool {
	word := int(id / bitsPerWord)
	if word >= maskWords {
		return false
	}
	return m[word]&(1<<(id%bitsPerWord)) != 0
}

func (m *mask) set(id ComponentID) {
	m[id/bitsPerWord] |= 1 << (id % bitsPerWord)
}

func (m *mask) unset(id ComponentID) {
	m[id/bitsPerWord] &^= 1 << (id % bitsPerWord)
}

// containsAll reports whether every bit of sub is set in m.
func (m mask) containsAll(sub mask) bool {
	for i := 0; i < maskWords; i++ {
		if m[i]&sub[i] != sub[i] {
			return false
		}
	}
	return true
}

// overlaps reports whether m and other share any bit.
func (m mask) overlaps(other mask) bool {
	for i := 0; i < maskWords; i++ {
		if m[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

func (m mask) count() int {
	n := 0
	for i := 0; i < maskWords; i++ {
		n += bits.OnesCount64(m[i])
	}
	return n
}

func makeMask(ids []ComponentID) mask {
	var m mask
	for _, id := range ids {
		m.set(id)
	}
	return m
}
