package gedcom

import "strings"

// First returns the first child with the given tag, or nil.
func (n *Node) First(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ValueOf returns the value of the first child with the given tag, or
// the empty string.
func (n *Node) ValueOf(tag string) string {
	if c := n.First(tag); c != nil {
		return c.Value
	}
	return ""
}

// Add appends a child line and returns it for further nesting.
func (n *Node) Add(tag, value string) *Node {
	child := &Node{Level: n.Level + 1, Tag: tag, Value: value}
	n.Children = append(n.Children, child)
	return child
}

// NewRecord builds a top-level record line such as "0 @I1@ INDI".
func NewRecord(xref, tag string) *Node {
	return &Node{Level: 0, Xref: xref, Tag: tag}
}

// IsPointer reports whether a value is an @X@ cross-reference.
func IsPointer(value string) bool {
	return len(value) > 2 && strings.HasPrefix(value, "@") && strings.HasSuffix(value, "@")
}

// TrimPointer strips the surrounding @ from a cross-reference value.
func TrimPointer(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "@")
	value = strings.TrimSuffix(value, "@")
	return value
}

// SplitPersonalName splits a NAME value on the GEDCOM slash convention:
// the surname sits between slashes, everything before is the given
// names. A value without slashes is all given names.
func SplitPersonalName(name string) (given, surname string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	if !strings.Contains(name, "/") {
		return name, ""
	}
	parts := strings.Split(name, "/")
	given = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		surname = strings.TrimSpace(parts[1])
	}
	return given, surname
}
