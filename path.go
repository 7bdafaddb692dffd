package jddf

import "strings"

// Pointer renders a sequence of path segments as an RFC 6901 JSON Pointer.
// The empty path renders as "" (the whole document).
func Pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, s := range segments {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// ParsePointer splits an RFC 6901 JSON Pointer back into path segments,
// undoing the '~0' and '~1' escapes. "" and "/" are not the same pointer: the
// former is the root, the latter addresses the empty-string key.
func ParsePointer(p string) []string {
	if p == "" {
		return []string{}
	}
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return parts
}

// path is a persistent stack of segments. Pushing never mutates the parent,
// so the same prefix can be shared by sibling branches during traversal.
type path struct {
	parent  *path
	segment string
	n       int
}

func (p *path) push(segments ...string) *path {
	for _, s := range segments {
		n := 1
		if p != nil {
			n = p.n + 1
		}
		p = &path{parent: p, segment: s, n: n}
	}
	return p
}

func (p *path) slice() []string {
	if p == nil {
		return []string{}
	}
	out := make([]string, p.n)
	for q := p; q != nil; q = q.parent {
		out[q.n-1] = q.segment
	}
	return out
}
