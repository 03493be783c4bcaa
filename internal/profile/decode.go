package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInputShape is returned when the profile collection is not a list of objects
var ErrInputShape = errors.New("profiles must be a list of objects")

// Decode reads a JSON array of profile objects. Numbers are kept as
// json.Number so they are written back exactly as they were read.
func Decode(r io.Reader) ([]Profile, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return FromValue(raw)
}

// DecodeBytes is Decode over an in-memory document
func DecodeBytes(data []byte) ([]Profile, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile decodes the profile list stored at path
func LoadFile(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profiles file: %w", err)
	}
	defer f.Close()

	profiles, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// FromValue converts a generically decoded value into profiles. Anything
// other than a list of objects is an input-shape error.
func FromValue(v interface{}) ([]Profile, error) {
	var items []interface{}
	switch t := v.(type) {
	case []interface{}:
		items = t
	case []map[string]interface{}:
		out := make([]Profile, len(t))
		for i, m := range t {
			out[i] = Profile(m)
		}
		return out, nil
	case []Profile:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInputShape, v)
	}

	profiles := make([]Profile, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrInputShape, i, item)
		}
		profiles = append(profiles, Profile(m))
	}
	return profiles, nil
}
