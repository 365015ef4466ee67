package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParamParser(t *testing.T) {
	type Params struct {
		ID      int      `param:"id"`
		Page    uint8    `param:"page"`
		Draft   bool     `param:"draft"`
		Name    string   `param:"name"`
		Slug    []string `param:"slug"`
		Ignored string
	}

	params := map[string]string{
		"id":    "42",
		"page":  "3",
		"draft": "true",
		"name":  "Senior-Dev",
		"slug":  "a/b/c",
	}

	var got Params
	if err := NewParamParser().Parse(params, &got); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := Params{ID: 42, Page: 3, Draft: true, Name: "Senior-Dev", Slug: []string{"a", "b", "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParamParserErrors(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		target any
	}{
		{"not a pointer", nil, struct{}{}},
		{"pointer to non-struct", nil, new(int)},
		{"bad int", map[string]string{"id": "abc"}, &struct {
			ID int `param:"id"`
		}{}},
		{"uint overflow", map[string]string{"n": "300"}, &struct {
			N uint8 `param:"n"`
		}{}},
		{"bad bool", map[string]string{"b": "maybe"}, &struct {
			B bool `param:"b"`
		}{}},
		{"unsupported slice", map[string]string{"s": "1/2"}, &struct {
			S []int `param:"s"`
		}{}},
		{"unsupported kind", map[string]string{"f": "1.5"}, &struct {
			F float64 `param:"f"`
		}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewParamParser().Parse(tt.params, tt.target); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}

	if err := NewParamParser().Parse(nil, nil); err != nil {
		t.Errorf("Parse(nil target) error = %v", err)
	}
}

func TestMatchResultBind(t *testing.T) {
	r := newTestRouter()

	m, ok := r.Match("/jobs/17/apply")
	if !ok {
		t.Fatal("no match")
	}

	var p struct {
		ID int `param:"id"`
	}
	if err := m.Bind(&p); err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if p.ID != 17 {
		t.Errorf("ID = %d, want 17", p.ID)
	}
}
