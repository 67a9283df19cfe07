package endpoint

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Endpoint
	}{
		{
			name: "AbsoluteLocalPath",
			spec: "/mnt/local",
			want: Endpoint{Kind: KindLocal, Path: "/mnt/local"},
		},
		{
			name: "RelativeLocalPath",
			spec: "backups/2026",
			want: Endpoint{Kind: KindLocal, Path: "backups/2026"},
		},
		{
			name: "LocalPathWithColonAfterSlash",
			spec: "/data/weird:name",
			want: Endpoint{Kind: KindLocal, Path: "/data/weird:name"},
		},
		{
			name: "WindowsDrivePath",
			spec: `C:\data\backups`,
			want: Endpoint{Kind: KindLocal, Path: `C:\data\backups`},
		},
		{
			name: "WindowsDrivePathForwardSlash",
			spec: "D:/media",
			want: Endpoint{Kind: KindLocal, Path: "D:/media"},
		},
		{
			name: "RemoteWithUser",
			spec: "owner@home.arpa:/mnt/nas",
			want: Endpoint{Kind: KindRemote, User: "owner", Host: "home.arpa", Path: "/mnt/nas"},
		},
		{
			name: "RemoteWithoutUser",
			spec: "nas.local:/volume1",
			want: Endpoint{Kind: KindRemote, Host: "nas.local", Path: "/volume1"},
		},
		{
			name: "RemoteRelativePath",
			spec: "user@host:data",
			want: Endpoint{Kind: KindRemote, User: "user", Host: "host", Path: "data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.spec, err)
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.want.Kind)
			}
			if got.Path != tt.want.Path {
				t.Errorf("Path = %q, want %q", got.Path, tt.want.Path)
			}
			if got.Host != tt.want.Host {
				t.Errorf("Host = %q, want %q", got.Host, tt.want.Host)
			}
			if got.User != tt.want.User {
				t.Errorf("User = %q, want %q", got.User, tt.want.User)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"Empty", ""},
		{"EmptyRemotePath", "user@host:"},
		{"EmptyHost", ":/data"},
		{"EmptyUser", "@host:/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.spec)
			}
			var specErr *InvalidSpecError
			if !errors.As(err, &specErr) {
				t.Errorf("error type = %T, want *InvalidSpecError", err)
			}
		})
	}
}

func TestProbeArg(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"Local", "/mnt/local", "/mnt/local"},
		{"RemoteWithUser", "owner@home.arpa:/mnt/nas", "owner@home.arpa:/mnt/nas"},
		{"RemoteWithoutUser", "nas.local:/volume1", "nas.local:/volume1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.spec, err)
			}
			if got := ep.ProbeArg(); got != tt.want {
				t.Errorf("ProbeArg() = %q, want %q", got, tt.want)
			}
		})
	}
}
