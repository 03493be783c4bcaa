package location

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field is a recognized geographic field name
type Field string

const (
	City    Field = "city"
	Country Field = "country"
	State   Field = "state"
	Region  Field = "region"
	County  Field = "county"
)

// Fields lists the recognized location fields in extraction order
var Fields = []Field{City, Country, State, Region, County}

// IsField reports whether name is a recognized location field
func IsField(name string) bool {
	for _, f := range Fields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Value is either a single trimmed string or a list of trimmed, non-empty strings
type Value struct {
	Scalar string
	List   []string
	IsList bool
}

// ScalarValue builds a single-string value
func ScalarValue(s string) Value {
	return Value{Scalar: s}
}

// ListValue builds a list value
func ListValue(items ...string) Value {
	return Value{List: items, IsList: true}
}

// MarshalJSON writes a scalar as a string and a list as an array
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON accepts a string or an array of strings
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ScalarValue(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("location value must be a string or list of strings: %w", err)
	}
	*v = ListValue(list...)
	return nil
}

// Descriptor is the canonical location of a profile. Fields without a usable
// value are absent; a descriptor never stores empty strings or empty lists.
type Descriptor map[Field]Value

// SortedFields returns the descriptor's fields in lexical order
func (d Descriptor) SortedFields() []Field {
	fields := make([]Field, 0, len(d))
	for f := range d {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Key returns the structural equality key of the descriptor. Two descriptors
// share a key iff their sorted-key JSON forms are equal: field order is
// ignored, list order is not, and a scalar never equals a one-element list.
func (d Descriptor) Key() string {
	var b strings.Builder
	for _, f := range d.SortedFields() {
		v := d[f]
		writeToken(&b, string(f))
		if v.IsList {
			b.WriteByte('L')
			b.WriteString(strconv.Itoa(len(v.List)))
			b.WriteByte(':')
			for _, item := range v.List {
				writeToken(&b, item)
			}
		} else {
			b.WriteByte('S')
			writeToken(&b, v.Scalar)
		}
	}
	return b.String()
}

func writeToken(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// Equal reports structural equality
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Key() == other.Key()
}

// Map returns the descriptor as a generic map for serialization
func (d Descriptor) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(d))
	for f, v := range d {
		if v.IsList {
			out[string(f)] = append([]string(nil), v.List...)
		} else {
			out[string(f)] = v.Scalar
		}
	}
	return out
}

// MarshalJSON writes the descriptor with sorted keys
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Map())
}

// UnmarshalJSON reads a descriptor, ignoring unrecognized keys
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Descriptor, len(raw))
	for k, msg := range raw {
		if !IsField(k) {
			continue
		}
		var v Value
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		out[Field(k)] = v
	}
	*d = out
	return nil
}

// String renders the descriptor for logs
func (d Descriptor) String() string {
	parts := make([]string, 0, len(d))
	for _, f := range d.SortedFields() {
		v := d[f]
		if v.IsList {
			parts = append(parts, fmt.Sprintf("%s=[%s]", f, strings.Join(v.List, ",")))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", f, v.Scalar))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
