package subset

import (
	"sort"
	"strconv"
	"strings"
)

// Set is a sorted, duplicate-free collection of intent indices.
// The zero value is the empty set and is ready to use.
type Set []int

// New builds a Set from arbitrary indices, sorting and deduplicating.
func New(indices ...int) Set {
	if len(indices) == 0 {
		return Set{}
	}
	s := make(Set, len(indices))
	copy(s, indices)
	sort.Ints(s)
	// Compact duplicates in place after sorting.
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}

// Full returns the complete universe {0..n-1}.
func Full(n int) Set {
	s := make(Set, n)
	for i := range s {
		s[i] = i
	}

	return s
}

// Len returns the cardinality of s.
func (s Set) Len() int { return len(s) }

// Empty reports whether s has no elements.
func (s Set) Empty() bool { return len(s) == 0 }

// Contains reports whether idx is an element of s.
func (s Set) Contains(idx int) bool {
	i := sort.SearchInts(s, idx)

	return i < len(s) && s[i] == idx
}

// With returns a copy of s with idx added.
func (s Set) With(idx int) Set {
	i := sort.SearchInts(s, idx)
	if i < len(s) && s[i] == idx {
		return s.Clone()
	}
	out := make(Set, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, idx)
	out = append(out, s[i:]...)

	return out
}

// Without returns a copy of s with idx removed.
func (s Set) Without(idx int) Set {
	i := sort.SearchInts(s, idx)
	if i >= len(s) || s[i] != idx {
		return s.Clone()
	}
	out := make(Set, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)

	return out
}

// Union returns the set union of s and t.
func (s Set) Union(t Set) Set {
	out := make(Set, 0, len(s)+len(t))
	i, j := 0, 0
	for i < len(s) && j < len(t) {
		switch {
		case s[i] < t[j]:
			out = append(out, s[i])
			i++
		case s[i] > t[j]:
			out = append(out, t[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	out = append(out, t[j:]...)

	return out
}

// Diff returns the elements of s not present in t.
func (s Set) Diff(t Set) Set {
	out := make(Set, 0, len(s))
	j := 0
	for _, v := range s {
		for j < len(t) && t[j] < v {
			j++
		}
		if j < len(t) && t[j] == v {
			continue
		}
		out = append(out, v)
	}

	return out
}

// Complement returns {0..n-1} \ s.
func (s Set) Complement(n int) Set {
	out := make(Set, 0, n-len(s))
	j := 0
	for i := 0; i < n; i++ {
		if j < len(s) && s[j] == i {
			j++
			continue
		}
		out = append(out, i)
	}

	return out
}

// SubsetOf reports whether every element of s is in t.
func (s Set) SubsetOf(t Set) bool {
	if len(s) > len(t) {
		return false
	}
	j := 0
	for _, v := range s {
		for j < len(t) && t[j] < v {
			j++
		}
		if j >= len(t) || t[j] != v {
			return false
		}
		j++
	}

	return true
}

// Equal reports whether s and t contain exactly the same elements.
func (s Set) Equal(t Set) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)

	return out
}

// Key returns the canonical, order-independent cache key for s.
// Two sets have equal keys iff they are Equal.
func (s Set) Key() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// String renders s in {a,b,c} form for logs and errors.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')

	return b.String()
}
