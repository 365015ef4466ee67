package routepath

import (
	"reflect"
	"testing"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"", nil},
		{"/jobs", []string{"jobs"}},
		{"/jobs/[id]", []string{"jobs", "[id]"}},
		{"/a/b/c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		got := Segments(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParent(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", ""},
		{"/jobs", ""},
		{"/jobs/list", "/jobs"},
		{"/a/b/c", "/a/b"},
	}

	for _, tt := range tests {
		if got := Parent(tt.path); got != tt.want {
			t.Errorf("Parent(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAncestors(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"/jobs", nil},
		{"/jobs/list", []string{"/jobs"}},
		{"/a/b/c", []string{"/a", "/a/b"}},
	}

	for _, tt := range tests {
		got := Ancestors(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Ancestors(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLast(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/", "", false},
		{"/open-positions", "open-positions", true},
		{"/jobs/[id]", "[id]", true},
	}

	for _, tt := range tests {
		got, ok := Last(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Last(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDepth(t *testing.T) {
	if got := Depth("/"); got != 0 {
		t.Errorf("Depth(/) = %d, want 0", got)
	}
	if got := Depth("/a/b"); got != 2 {
		t.Errorf("Depth(/a/b) = %d, want 2", got)
	}
}
