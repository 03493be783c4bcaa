package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Profile is a loosely shaped user record decoded from JSON. Values keep the
// types produced by a json.Decoder with UseNumber: string, json.Number, bool,
// nil, []interface{} and map[string]interface{}.
type Profile map[string]interface{}

// Identifier keys in resolution order
var IdentifierKeys = []string{"uuid", "id", "username"}

// Has reports whether key is present, even when its value is null
func (p Profile) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Truthy reports whether the value stored at key is truthy. Missing keys are falsy.
func (p Profile) Truthy(key string) bool {
	return Truthy(p[key])
}

// Identifier returns the first truthy value among uuid, id and username.
// It returns nil when the profile carries none of them.
func (p Profile) Identifier() interface{} {
	for _, key := range IdentifierKeys {
		if v := p[key]; Truthy(v) {
			return v
		}
	}
	return nil
}

// Truthy applies the loose truthiness used throughout profile handling:
// nil, false, numeric zero, empty strings and empty collections are falsy.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String() != ""
		}
		return f != 0
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// Stringify renders a scalar value the way location fields and identifiers
// are compared: strings verbatim, numbers by their literal text, booleans as
// true/false and anything else as compact JSON.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// AsList returns the elements of v when it is a list value
func AsList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// CleanList stringifies and trims every truthy element of list, dropping the
// ones that end up empty.
func CleanList(list []interface{}) []string {
	cleaned := make([]string, 0, len(list))
	for _, item := range list {
		if !Truthy(item) {
			continue
		}
		s := strings.TrimSpace(Stringify(item))
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

// Find returns the first profile whose identifier, compared as a string, equals id
func Find(profiles []Profile, id string) (Profile, bool) {
	if id == "" {
		return nil, false
	}
	for _, p := range profiles {
		if Stringify(p.Identifier()) == id {
			return p, true
		}
	}
	return nil, false
}
