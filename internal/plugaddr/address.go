package plugaddr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/colorgrid/internal/schema"
)

// Address names a plug on a node instance.
type Address struct {
	Node string
	Attr string
	// Index is -1 when the address names the whole attribute.
	Index int
}

// segmentRegex matches a single segment, e.g. `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// New builds an address for the whole attribute.
func New(node, attr string) Address {
	return Address{Node: node, Attr: attr, Index: -1}
}

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("plug address cannot be empty")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return Address{}, fmt.Errorf("plug address %q must have the form node.attribute[index]", raw)
	}
	for _, p := range parts {
		if p == "" {
			return Address{}, fmt.Errorf("plug address %q contains an empty segment", raw)
		}
	}

	if !segmentRegex.MatchString(parts[0]) || strings.Contains(parts[0], "[") {
		return Address{}, fmt.Errorf("invalid node name: %q", parts[0])
	}

	matches := segmentRegex.FindStringSubmatch(parts[1])
	if matches == nil {
		return Address{}, fmt.Errorf("invalid attribute segment: %q", parts[1])
	}

	addr := New(parts[0], matches[1])
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			return Address{}, fmt.Errorf("invalid index in %q: %w", raw, err)
		}
		addr.Index = index
	}
	return addr, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Address {
	addr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return addr
}

// HasIndex reports whether the address names a single array element.
func (a Address) HasIndex() bool {
	return a.Index >= 0
}

// Plug returns the node-local part of the address.
func (a Address) Plug() schema.Plug {
	return schema.Plug{Attr: a.Attr, Index: a.Index}
}

// String serializes the Address into its canonical representation.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Node)
	sb.WriteRune('.')
	sb.WriteString(a.Attr)
	if a.HasIndex() {
		fmt.Fprintf(&sb, "[%d]", a.Index)
	}
	return sb.String()
}
