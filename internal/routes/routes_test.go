package routes

import (
	"errors"
	"reflect"
	"testing"

	"github.com/psychat-dev/psychat/pkg/router"
)

func TestNew(t *testing.T) {
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if table.Len() != len(Definitions()) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(Definitions()))
	}
}

func TestResolve(t *testing.T) {
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		path       string
		wantView   router.View
		wantParams map[string]string
	}{
		{"/", HomePage, map[string]string{}},
		{"/psychologist/42/intro", PsychologistIntro, map[string]string{"id": "42"}},
		{"/psychologist/7/chat", PsychologistChat, map[string]string{"id": "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result, err := table.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.path, err)
			}
			if result.View != tt.wantView {
				t.Errorf("View = %q, want %q", result.View, tt.wantView)
			}
			if !reflect.DeepEqual(result.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", result.Params, tt.wantParams)
			}

			again, err := table.Resolve(tt.path)
			if err != nil || !reflect.DeepEqual(again, result) {
				t.Errorf("second Resolve(%q) = %+v, %v; want %+v", tt.path, again, err, result)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	table, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := table.Resolve("/unknown"); !errors.Is(err, router.ErrRouteNotFound) {
		t.Errorf("Resolve(/unknown) error = %v, want ErrRouteNotFound", err)
	}
}

func TestNamesMatchViews(t *testing.T) {
	for _, r := range Definitions() {
		if string(r.View) != r.Name {
			t.Errorf("route %q renders view %q", r.Name, r.View)
		}
	}
}
