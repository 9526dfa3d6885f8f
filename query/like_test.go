package query

import "testing"

func TestMatchLike(t *testing.T) {
	tests := []struct {
		str     string
		pattern string
		want    bool
	}{
		{"hello_world", "hello%", true},
		{"hello_world", "h_llo%", true},
		{"hello_world", "x%", false},
		{"hello_world", "hello_world", true},
		{"hello_world", "%world", true},
		{"hello_world", "%o_w%", true},
		{"hello_world", "%", true},
		{"", "%", true},
		{"", "_", false},
		{"abc", "a_c", true},
		{"abc", "a_", false},
		{"abc", "%%c", true},
		{"abc", "abc%", true},
		{"error: disk full", "%error%", true},
		{"warning", "%error%", false},
		// Backtracking: the first greedy match of "a" must retreat
		// for the trailing literal to land.
		{"aXaYa", "%a", true},
		{"aXaYab", "%a_", true},
		{"mississippi", "%iss%ppi", true},
		{"mississippi", "%iss%ppx", false},
	}

	for _, tt := range tests {
		t.Run(tt.str+" LIKE "+tt.pattern, func(t *testing.T) {
			if got := matchLike(tt.str, tt.pattern); got != tt.want {
				t.Errorf("matchLike(%q, %q) = %v, want %v", tt.str, tt.pattern, got, tt.want)
			}
		})
	}
}
