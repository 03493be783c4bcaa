package profile

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{name: "nil", value: nil, want: false},
		{name: "false", value: false, want: false},
		{name: "true", value: true, want: true},
		{name: "empty string", value: "", want: false},
		{name: "whitespace string", value: "  ", want: true},
		{name: "zero number", value: json.Number("0"), want: false},
		{name: "zero float literal", value: json.Number("0.0"), want: false},
		{name: "non-zero number", value: json.Number("3"), want: true},
		{name: "empty list", value: []interface{}{}, want: false},
		{name: "non-empty list", value: []interface{}{"a"}, want: true},
		{name: "empty object", value: map[string]interface{}{}, want: false},
		{name: "string false is truthy", value: "false", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "string", value: "Paris", want: "Paris"},
		{name: "number literal", value: json.Number("10.50"), want: "10.50"},
		{name: "bool", value: true, want: "true"},
		{name: "int", value: 42, want: "42"},
		{name: "nested list", value: []interface{}{"a", json.Number("1")}, want: `["a",1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.value); got != tt.want {
				t.Errorf("Stringify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentifierFallback(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    interface{}
	}{
		{name: "uuid wins", profile: Profile{"uuid": "u1", "id": "i1", "username": "n1"}, want: "u1"},
		{name: "empty uuid falls to id", profile: Profile{"uuid": "", "id": json.Number("7")}, want: json.Number("7")},
		{name: "username last", profile: Profile{"username": "alice.sf"}, want: "alice.sf"},
		{name: "no identifier", profile: Profile{"city": "NYC"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Identifier(); got != tt.want {
				t.Errorf("Identifier() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCleanList(t *testing.T) {
	got := CleanList([]interface{}{" Paris ", "", nil, "   ", json.Number("0"), "Lyon", false})
	want := []string{"Paris", "Lyon"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("CleanList() = %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	profiles := []Profile{
		{"uuid": "a", "city": "NYC"},
		{"id": json.Number("12"), "city": "LA"},
		{"username": "carol.ny"},
	}

	if p, ok := Find(profiles, "12"); !ok || p["city"] != "LA" {
		t.Errorf("Find by numeric id failed: %v %v", p, ok)
	}
	if _, ok := Find(profiles, "carol.ny"); !ok {
		t.Error("Find by username failed")
	}
	if _, ok := Find(profiles, "missing"); ok {
		t.Error("Find returned a profile for an unknown identifier")
	}
	if _, ok := Find(profiles, ""); ok {
		t.Error("Find matched an empty identifier")
	}
}

func TestDecode(t *testing.T) {
	profiles, err := DecodeBytes([]byte(`[{"uuid":"a","credits":10.50,"city":["Paris","Lyon"]},{"uuid":"b"}]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("Decode() returned %d profiles, want 2", len(profiles))
	}
	if n, ok := profiles[0]["credits"].(json.Number); !ok || n.String() != "10.50" {
		t.Errorf("credits decoded as %#v, want json.Number(10.50)", profiles[0]["credits"])
	}
}

func TestDecodeRejectsNonList(t *testing.T) {
	inputs := map[string]string{
		"object":         `{"uuid":"a"}`,
		"string":         `"users"`,
		"null":           `null`,
		"list of scalar": `[{"uuid":"a"}, 3]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(input))
			if !errors.Is(err, ErrInputShape) {
				t.Errorf("Decode(%s) error = %v, want ErrInputShape", input, err)
			}
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := DecodeBytes([]byte(`[{"uuid":`))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrInputShape) {
		t.Errorf("malformed JSON reported as shape error: %v", err)
	}
}
