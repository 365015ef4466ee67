package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		code    string
		wantMsg string
		wantCat Category
	}{
		{"E201", "Configuration file not found", CategoryConfig},
		{"E303", "Listing pages from S3 failed", CategorySource},
		{"E401", "Navigation server failed", CategoryServer},
		{"E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		err := New(tt.code)
		if err.Message != tt.wantMsg {
			t.Errorf("New(%q).Message = %q, want %q", tt.code, err.Message, tt.wantMsg)
		}
		if err.Category != tt.wantCat {
			t.Errorf("New(%q).Category = %q, want %q", tt.code, err.Category, tt.wantCat)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := New("E302").Wrap(fs.ErrPermission)
	if got := err.Error(); got != "E302: Page scan failed: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryCLI, "bad flag %q", "x").Error(); got != `bad flag "x"` {
		t.Errorf("Newf Error() = %q", got)
	}
}

func TestUnwrapAndIs(t *testing.T) {
	err := fmt.Errorf("startup: %w", New("E203").Wrap(fs.ErrNotExist))

	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if !stderrors.Is(err, New("E203")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E201")) {
		t.Error("errors.Is should not match a different code")
	}
	if got := Code(err); got != "E203" {
		t.Errorf("Code() = %q, want E203", got)
	}
	if got := Code(fs.ErrClosed); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E302") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E301")
	if got := FromError(fmt.Errorf("wrap: %w", orig), "E302"); got != orig {
		t.Error("FromError should return the existing *Error")
	}

	got := FromError(fs.ErrPermission, "E302")
	if got.Code != "E302" || !stderrors.Is(got, fs.ErrPermission) {
		t.Errorf("FromError = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E203").
		WithDetail("auth.required is true but no token is configured").
		WithSuggestion("Set BACKEND_API_TOKEN").
		Format()

	for _, want := range []string{
		"ERROR E203: Frame credential missing",
		"auth.required is true but no token is configured",
		"Hint: Set BACKEND_API_TOKEN",
		"Learn more: " + docBase + "E203",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("E204").WithDetail("server.addr is empty").Wrap(fs.ErrInvalid))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"code":"E204","category":"config","message":"Invalid configuration value","detail":"server.addr is empty"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestCodesRegistered(t *testing.T) {
	codes := Codes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for _, code := range codes {
		tmpl, ok := Lookup(code)
		if !ok || tmpl.Message == "" || tmpl.DocURL == "" {
			t.Errorf("code %s has incomplete template: %+v", code, tmpl)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 10)
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three four" {
		t.Errorf("wrapText = %q", lines)
	}
}
