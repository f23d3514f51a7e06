package importer

import (
	"testing"
	"time"
)

func TestParseHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "8", want: "8"},
		{name: "decimal dot", input: "7.5", want: "7.5"},
		{name: "decimal comma", input: "7,25", want: "7.25"},
		{name: "thousands and comma", input: "1.000,5", want: "1000.5"},
		{name: "clock duration", input: "7:30", want: "7.5"},
		{name: "clock duration rounds", input: "0:20", want: "0.33"},
		{name: "zero", input: "0", want: "0"},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "invalid", input: "abc", wantErr: true},
		{name: "invalid minutes", input: "7:75", wantErr: true},
		{name: "negative zero clock", input: "-0:30", wantErr: true},
		{name: "negative clock", input: " -2:15", wantErr: true},
		{name: "large clock duration", input: "3000000:00", want: "3000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseHours(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Fatalf("unexpected hours for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestDurationHours(t *testing.T) {
	t.Parallel()

	if got := durationHours(8*time.Hour + 20*time.Minute); got.String() != "8.33" {
		t.Fatalf("expected 8.33, got %s", got)
	}
	if got := durationHours(0); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}
