package discovery

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies a requirement family. It is the stable type tag that
// specifications and lookups dispatch on, so two kinds are comparable
// only when equal; scope strings carried under different kinds must
// never be compared to each other.
type Kind struct {
	value string
}

// NewKind creates a Kind with strict validation.
// A valid kind must:
// - Be non-empty and at most 64 characters long
// - Contain only lowercase alphanumerics, dots, underscores, and hyphens
// - Start and end with an alphanumeric character
func NewKind(kind string) (Kind, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return Kind{}, fmt.Errorf("requirement kind cannot be empty")
	}

	if len(kind) > 64 {
		return Kind{}, fmt.Errorf("requirement kind too long (max 64 chars)")
	}

	if !isKindAlnum(rune(kind[0])) || !isKindAlnum(rune(kind[len(kind)-1])) {
		return Kind{}, fmt.Errorf("invalid requirement kind %q: must start and end with an alphanumeric character", kind)
	}

	for _, ch := range kind {
		if !isKindAlnum(ch) && ch != '.' && ch != '_' && ch != '-' {
			return Kind{}, fmt.Errorf("invalid requirement kind %q: must contain only lowercase alphanumerics, dots, underscores, and hyphens", kind)
		}
	}

	return Kind{value: kind}, nil
}

func isKindAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// MustKind creates a Kind or panics. Intended for package-level
// declarations of well-known kinds.
func MustKind(kind string) Kind {
	k, err := NewKind(kind)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the string representation.
func (k Kind) String() string {
	return k.value
}

// IsEmpty returns true if this is the zero value.
func (k Kind) IsEmpty() bool {
	return k.value == ""
}

// MarshalJSON implements json.Marshaler.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid requirement kind JSON: %w", err)
	}

	kind, err := NewKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
