package location

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/locgroup/internal/profile"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		profile     profile.Profile
		want        Descriptor
		description string
	}{
		{
			name:        "scalar fields trimmed",
			profile:     profile.Profile{"uuid": "a", "city": "  New York ", "state": "NY"},
			want:        Descriptor{City: ScalarValue("New York"), State: ScalarValue("NY")},
			description: "Surrounding whitespace is removed from scalar values",
		},
		{
			name:        "list cleaned",
			profile:     profile.Profile{"city": []interface{}{" Paris", "", nil, "Lyon "}},
			want:        Descriptor{City: ListValue("Paris", "Lyon")},
			description: "Empty and null list elements are dropped",
		},
		{
			name:        "empty values omitted",
			profile:     profile.Profile{"city": "", "country": []interface{}{}, "state": nil, "region": []interface{}{"", "  "}, "county": "   "},
			want:        Descriptor{},
			description: "Fields with no usable value never appear",
		},
		{
			name:        "unrecognized fields ignored",
			profile:     profile.Profile{"city": "Austin", "lat": json.Number("30.2"), "timezone": "America/Chicago"},
			want:        Descriptor{City: ScalarValue("Austin")},
			description: "Only the recognized geographic fields are extracted",
		},
		{
			name:        "numbers stringified",
			profile:     profile.Profile{"county": json.Number("12")},
			want:        Descriptor{County: ScalarValue("12")},
			description: "Non-string scalars are converted by their literal text",
		},
		{
			name:        "string slice accepted",
			profile:     profile.Profile{"country": []string{"USA", " "}},
			want:        Descriptor{Country: ListValue("USA")},
			description: "Typed string slices behave like decoded JSON lists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.profile)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
			t.Logf("%s", tt.description)
		})
	}
}

func TestExtractDoesNotMutateProfile(t *testing.T) {
	list := []interface{}{" Paris ", ""}
	p := profile.Profile{"city": list}
	Extract(p)
	if list[0] != " Paris " || len(list) != 2 {
		t.Errorf("input list was mutated: %#v", list)
	}
}

func TestKey(t *testing.T) {
	a := Descriptor{City: ScalarValue("NYC"), State: ScalarValue("NY")}
	b := Descriptor{State: ScalarValue("NY"), City: ScalarValue("NYC")}
	if a.Key() != b.Key() {
		t.Error("field insertion order changed the key")
	}

	scalar := Descriptor{City: ScalarValue("NYC")}
	list := Descriptor{City: ListValue("NYC")}
	if scalar.Key() == list.Key() {
		t.Error("scalar and one-element list share a key")
	}

	ordered := Descriptor{City: ListValue("Paris", "Lyon")}
	reversed := Descriptor{City: ListValue("Lyon", "Paris")}
	if ordered.Key() == reversed.Key() {
		t.Error("list order should be significant")
	}

	// length prefixes keep element boundaries unambiguous
	split := Descriptor{City: ListValue("a:b", "c")}
	joined := Descriptor{City: ListValue("a", "b:c")}
	if split.Key() == joined.Key() {
		t.Error("different lists produced the same key")
	}
}

func TestDedupe(t *testing.T) {
	input := []Descriptor{
		{City: ScalarValue("NYC")},
		{},
		{City: ScalarValue("LA")},
		{City: ScalarValue("NYC")},
		{City: ListValue("Paris", "Lyon")},
		{City: ListValue("Paris", "Lyon")},
	}
	want := []Descriptor{
		{City: ScalarValue("NYC")},
		{City: ScalarValue("LA")},
		{City: ListValue("Paris", "Lyon")},
	}

	got := Dedupe(input)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Dedupe() = %v, want %v", got, want)
	}

	if again := Dedupe(got); !reflect.DeepEqual(again, got) {
		t.Errorf("Dedupe is not a fixed point: %v", again)
	}

	if repeat := Dedupe(input); !reflect.DeepEqual(repeat, got) {
		t.Errorf("Dedupe order is not stable: %v", repeat)
	}
}

func TestUniqueExample(t *testing.T) {
	profiles := []profile.Profile{
		{"uuid": "a", "city": "NYC", "is_banned": true},
		{"uuid": "b", "city": "NYC", "is_verified": true},
		{"uuid": "c", "city": "LA", "is_verified": false},
		{"uuid": "d"},
	}
	want := []Descriptor{{City: ScalarValue("NYC")}, {City: ScalarValue("LA")}}

	if got := Unique(profiles); !reflect.DeepEqual(got, want) {
		t.Errorf("Unique() = %v, want %v", got, want)
	}
}

func TestDescriptorJSON(t *testing.T) {
	d := Descriptor{State: ScalarValue("CA"), City: ListValue("San Francisco", "Oakland")}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"city":["San Francisco","Oakland"],"state":"CA"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Descriptor
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed descriptor: %v", back)
	}
}
