package location

import (
	"strings"

	"github.com/locgroup/internal/profile"
)

// Extract derives the canonical location descriptor of a profile. The result
// is empty when no recognized field holds a usable value.
func Extract(p profile.Profile) Descriptor {
	d := make(Descriptor)
	for _, f := range Fields {
		if v, ok := extractValue(p[string(f)]); ok {
			d[f] = v
		}
	}
	return d
}

func extractValue(raw interface{}) (Value, bool) {
	if !profile.Truthy(raw) {
		return Value{}, false
	}
	if list, ok := profile.AsList(raw); ok {
		cleaned := profile.CleanList(list)
		if len(cleaned) == 0 {
			return Value{}, false
		}
		return ListValue(cleaned...), true
	}
	s := strings.TrimSpace(profile.Stringify(raw))
	if s == "" {
		return Value{}, false
	}
	return ScalarValue(s), true
}

// ExtractAll extracts one descriptor per profile, in input order. Empty
// descriptors are kept so positions line up with the input.
func ExtractAll(profiles []profile.Profile) []Descriptor {
	out := make([]Descriptor, len(profiles))
	for i, p := range profiles {
		out[i] = Extract(p)
	}
	return out
}

// Dedupe keeps the first occurrence of every non-empty descriptor,
// preserving discovery order.
func Dedupe(descriptors []Descriptor) []Descriptor {
	seen := make(map[string]struct{}, len(descriptors))
	unique := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if len(d) == 0 {
			continue
		}
		key := d.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, d)
	}
	return unique
}

// Unique extracts and deduplicates the locations of profiles
func Unique(profiles []profile.Profile) []Descriptor {
	return Dedupe(ExtractAll(profiles))
}
