// Package roles holds the ordered chain of approver roles. The position of a
// role in the chain decides which step it signs and who signs after it.
package roles

import "strings"

type Sequence struct {
	ordered []string
}

// NewSequence builds a chain from role names in approval order. Names are
// upper-cased and deduplicated, first occurrence wins.
func NewSequence(names []string) Sequence {
	seen := make(map[string]bool, len(names))
	var ordered []string
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		ordered = append(ordered, name)
	}
	return Sequence{ordered: ordered}
}

// Parse builds a chain from a comma-separated list, e.g. "MANAGER,DIRECTOR".
func Parse(s string) Sequence {
	return NewSequence(strings.Split(s, ","))
}

func (s Sequence) Len() int {
	return len(s.ordered)
}

// First returns the role that signs step 1.
func (s Sequence) First() (string, bool) {
	if len(s.ordered) == 0 {
		return "", false
	}
	return s.ordered[0], true
}

// Next returns the role that signs after the given one, or false when the
// given role is terminal or unknown.
func (s Sequence) Next(role string) (string, bool) {
	for i, r := range s.ordered {
		if r == role && i+1 < len(s.ordered) {
			return s.ordered[i+1], true
		}
	}
	return "", false
}

// IsFinal reports whether approving this role's step completes the request.
func (s Sequence) IsFinal(role string) bool {
	return len(s.ordered) > 0 && s.ordered[len(s.ordered)-1] == role
}

func (s Sequence) Contains(role string) bool {
	for _, r := range s.ordered {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the chain in approval order.
func (s Sequence) Roles() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}
