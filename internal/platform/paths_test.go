package platform

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b/file.txt", "a/b/file.txt"},
		{"a/b/dir/", "a/b/dir"},
		{"a//b", "a/b"},
		{"./a/b", "a/b"},
		{".", "."},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParentKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b/file.txt", "a/b"},
		{"a/b/dir/", "a/b"},
		{"topfile.txt", "."},
		{"dir/", "."},
	}

	for _, tt := range tests {
		if got := ParentKey(tt.in); got != tt.want {
			t.Errorf("ParentKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasDrivePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`C:\data`, true},
		{"D:/media", true},
		{"c:", true},
		{"host:/data", false},
		{"Ca:/data", false},
		{"/mnt/c", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasDrivePrefix(tt.in); got != tt.want {
			t.Errorf("HasDrivePrefix(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnsureTrailingSlash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/mnt/local", "/mnt/local/"},
		{"/mnt/local/", "/mnt/local/"},
		{`C:\data\`, `C:\data\`},
	}

	for _, tt := range tests {
		if got := EnsureTrailingSlash(tt.in); got != tt.want {
			t.Errorf("EnsureTrailingSlash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
