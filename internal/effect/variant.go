package effect

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant selects a named effect profile.
type Variant int

const (
	// Snow drifts white flakes down from above the surface.
	Snow Variant = iota + 1
	// Bubble floats translucent rings up from below the surface.
	Bubble
)

var variantNames = map[Variant]string{
	Snow:   "snow",
	Bubble: "bubble",
}

// Variants returns every known variant in a stable order.
func Variants() []Variant {
	return []Variant{Snow, Bubble}
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]
	return ok
}

// ParseVariant resolves a variant by name, ignoring case and surrounding space.
func ParseVariant(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames {
		if n == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// MarshalYAML writes the variant by name.
func (v Variant) MarshalYAML() (interface{}, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return v.String(), nil
}

// UnmarshalYAML reads the variant by name.
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseVariant(name)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
