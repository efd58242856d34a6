package browser

import (
	"reflect"
	"testing"
)

func TestOpenRejectsUnsafeURLs(t *testing.T) {
	tests := []string{
		"javascript:alert(1)",
		"file:///etc/passwd",
		"ftp://example.com",
		"https://",
		"://bad",
	}
	for _, raw := range tests {
		if err := Open(raw); err == nil {
			t.Errorf("Open(%q) succeeded, want refusal", raw)
		}
	}
}

func TestOpener(t *testing.T) {
	const u = "https://example.com/post"
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{u}},
		{"linux", "xdg-open", []string{u}},
		{"freebsd", "xdg-open", []string{u}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", u}},
	}
	for _, tt := range tests {
		name, args := opener(tt.goos, u)
		if name != tt.name || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("opener(%s) = %s %v, want %s %v", tt.goos, name, args, tt.name, tt.args)
		}
	}
}
