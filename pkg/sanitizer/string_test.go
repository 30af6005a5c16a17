package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Board Room A  ",
			want:  "Board Room A",
		},
		{
			name:  "multiple spaces between words",
			input: "Board    Room A",
			want:  "Board Room A",
		},
		{
			name:  "tabs and newlines",
			input: "Board\t\nRoom A",
			want:  "Board Room A",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Lounge™ ",
			want:  "Café & Lounge™",
		},
		{
			name:  "hebrew characters",
			input: " חדר ישיבות ",
			want:  "חדר ישיבות",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines",
			input: "hello\t\nworld",
			want:  "hello world",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameForComparison(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "convert to lowercase",
			input: "Board Room A",
			want:  "board room a",
		},
		{
			name:  "collapse multiple spaces",
			input: "Board   Room A",
			want:  "board room a",
		},
		{
			name:  "preserve special chars but lowercase",
			input: "Café & Lounge™",
			want:  "café & lounge™",
		},
		{
			name:  "trim and lowercase",
			input: "  BOARD  Café  ",
			want:  "board café",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeNameForComparison(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeNameForComparison(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeRoomID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "100", want: "100"},
		{name: "trim", input: "  room-7 ", want: "room-7"},
		{name: "spaces become dash", input: "floor 3  east", want: "floor-3-east"},
		{name: "strip punctuation edges", input: "#a1!", want: "a1"},
		{name: "keeps case and dots", input: "HQ.Main_1", want: "HQ.Main_1"},
		{name: "only garbage", input: "!!!", want: ""},
		{name: "idempotent", input: SanitizeRoomID("a  /b"), want: "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeRoomID(tt.input); got != tt.want {
				t.Errorf("SanitizeRoomID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{" 100 ", "100", "", "floor 2"}, SanitizeRoomID)
	want := []string{"100", "floor-2"}
	if len(got) != len(want) {
		t.Fatalf("SanitizeSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SanitizeSlice()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
