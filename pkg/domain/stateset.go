package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SetID is the single canonical naming routine for a set of members (state ids or
// regex positions). Members are sorted in their natural order, de-duplicated,
// comma-joined and wrapped in braces. The empty set is named EmptySet.
//
// A backslash is put before each `\`, `,`, `{` and `}` inside a member. This keeps
// distinct sets distinct: {a,b} names the set of a and b, and {a\,b} names the
// set holding the single state "a,b".
func SetID[T cmp.Ordered](members []T) string {
	if len(members) == 0 {
		return EmptySet
	}
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = escapeMember(fmt.Sprint(m))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

const setSpecials = `\,{}`

func escapeMember(m string) string {
	if !strings.ContainsAny(m, setSpecials) {
		return m
	}
	var sb strings.Builder
	for _, r := range m {
		if strings.ContainsRune(setSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// StateSet is an unordered set of state ids.
type StateSet map[string]struct{}

// NewStateSet creates a set holding ids.
func NewStateSet(ids ...string) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was absent.
func (s StateSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports membership.
func (s StateSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s StateSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ID returns the canonical name of the set.
func (s StateSet) ID() string {
	return SetID(s.Sorted())
}

// Intersects reports whether s and other share a member.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}
