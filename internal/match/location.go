package match

import (
	"strings"

	"github.com/locgroup/internal/location"
	"github.com/locgroup/internal/profile"
)

// Matches reports whether the profile satisfies every field of the descriptor.
// Fields the descriptor does not carry are never consulted.
func Matches(p profile.Profile, d location.Descriptor) bool {
	for field, want := range d {
		if !FieldMatches(p[string(field)], want) {
			return false
		}
	}
	return true
}

// FieldMatches applies the list-aware comparison for one field:
// a list on either side matches when the two sides share an element,
// two scalars match on trimmed equality.
func FieldMatches(raw interface{}, want location.Value) bool {
	if !profile.Truthy(raw) {
		return false
	}

	if list, ok := profile.AsList(raw); ok {
		have := profile.CleanList(list)
		if want.IsList {
			return overlaps(want.List, have)
		}
		return contains(have, strings.TrimSpace(want.Scalar))
	}

	have := strings.TrimSpace(profile.Stringify(raw))
	if want.IsList {
		return contains(trimAll(want.List), have)
	}
	return have == strings.TrimSpace(want.Scalar)
}

func overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[strings.TrimSpace(s)]; ok {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func trimAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
