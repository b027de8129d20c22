package redact

import (
	"reflect"
	"testing"
)

func TestRedactor_Apply(t *testing.T) {
	r := New(nil) // default field set

	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name:     "scalar untouched",
			input:    "hello",
			expected: "hello",
		},
		{
			name:     "top level field",
			input:    map[string]any{"password": "hunter2", "user": "ada"},
			expected: map[string]any{"password": Marker, "user": "ada"},
		},
		{
			name: "nested field",
			input: map[string]any{
				"auth": map[string]any{"token": "abc", "scheme": "bearer"},
			},
			expected: map[string]any{
				"auth": map[string]any{"token": Marker, "scheme": "bearer"},
			},
		},
		{
			name: "field inside slice elements",
			input: []any{
				map[string]any{"cookie": "session=1"},
				map[string]any{"name": "ok"},
			},
			expected: []any{
				map[string]any{"cookie": Marker},
				map[string]any{"name": "ok"},
			},
		},
		{
			name:     "case insensitive key match",
			input:    map[string]any{"Authorization": "Bearer xyz"},
			expected: map[string]any{"Authorization": Marker},
		},
		{
			name:     "string map form",
			input:    map[string]string{"Cookie": "a=1", "Accept": "*/*"},
			expected: map[string]string{"Cookie": Marker, "Accept": "*/*"},
		},
		{
			name:     "redacted value can itself be nested",
			input:    map[string]any{"token": map[string]any{"inner": "x"}},
			expected: map[string]any{"token": Marker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Apply(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Apply(%#v) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRedactor_Idempotent(t *testing.T) {
	r := New([]string{"secret"})
	input := map[string]any{
		"secret": "v",
		"nested": map[string]any{"secret": "w", "keep": 1},
	}

	once := r.Apply(input)
	twice := r.Apply(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("redaction not idempotent: %#v vs %#v", once, twice)
	}
}

func TestRedactor_DoesNotMutateInput(t *testing.T) {
	r := New(nil)
	input := map[string]any{"password": "hunter2"}

	_ = r.Apply(input)

	if input["password"] != "hunter2" {
		t.Error("Apply mutated its input")
	}
}

func TestRedactor_CustomFields(t *testing.T) {
	r := New([]string{"apiKey"})

	got := r.Apply(map[string]any{"apikey": "k", "password": "p"})
	want := map[string]any{"apikey": Marker, "password": "p"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %#v, want %#v", got, want)
	}
}
