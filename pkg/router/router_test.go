package router

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/psychat-dev/psychat/pkg/routepath"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		Route{Path: "/", Name: "HomePage", View: "HomePage"},
		Route{Path: "/psychologist/:id/intro", Name: "PsychologistIntro", View: "PsychologistIntro"},
		Route{Path: "/psychologist/:id/chat", Name: "PsychologistChat", View: "PsychologistChat"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestTableResolve(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		path       string
		wantView   View
		wantParams map[string]string
	}{
		{"/", "HomePage", map[string]string{}},
		{"/psychologist/42/intro", "PsychologistIntro", map[string]string{"id": "42"}},
		{"/psychologist/7/chat", "PsychologistChat", map[string]string{"id": "7"}},
		{"/psychologist/dr%20ada/intro", "PsychologistIntro", map[string]string{"id": "dr ada"}},
		{"/psychologist/7/chat/", "PsychologistChat", map[string]string{"id": "7"}},
		{"/psychologist//7/chat?topic=sleep", "PsychologistChat", map[string]string{"id": "7"}},
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
			if result.Route.View != result.View {
				t.Errorf("Route.View = %q, want %q", result.Route.View, result.View)
			}
			if !reflect.DeepEqual(result.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", result.Params, tt.wantParams)
			}
		})
	}
}

func TestTableResolveQuery(t *testing.T) {
	table := newTestTable(t)

	result, err := table.Resolve("/psychologist/7/chat?topic=sleep")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Path != "/psychologist/7/chat" {
		t.Errorf("Path = %q, want %q", result.Path, "/psychologist/7/chat")
	}
	if result.Query != "topic=sleep" {
		t.Errorf("Query = %q, want %q", result.Query, "topic=sleep")
	}
}

func TestTableResolveNotFound(t *testing.T) {
	table := newTestTable(t)

	paths := []string{
		"/unknown",
		"/psychologist",
		"/psychologist/42",
		"/psychologist/42/intro/extra",
		"/psychologist/42/profile",
	}

	for _, path := range paths {
		_, err := table.Resolve(path)
		if !errors.Is(err, ErrRouteNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrRouteNotFound", path, err)
			continue
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("Resolve(%q) error is %T, want *NotFoundError", path, err)
			continue
		}
		if nf.Path != path {
			t.Errorf("NotFoundError.Path = %q, want %q", nf.Path, path)
		}
	}
}

func TestTableResolveRejectedPaths(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		path  string
		cause error
	}{
		{"/../psychologist/1/chat", routepath.ErrPathEscapesRoot},
		{"/psychologist\\1/chat", routepath.ErrBackslashInPath},
		{"/psychologist/a%2Fb/chat", routepath.ErrEncodedSlashInSegment},
		{"/psychologist/%G1/chat", routepath.ErrInvalidPercentEscape},
		{"/psychologist/\xff/chat", routepath.ErrInvalidUTF8},
		{"/psychologist/%FF/chat", routepath.ErrInvalidUTF8},
		{"", routepath.ErrInvalidPath},
		{"psychologist/1/chat", routepath.ErrInvalidPath},
		{"?topic=sleep", routepath.ErrInvalidPath},
	}

	for _, tt := range tests {
		_, err := table.Resolve(tt.path)
		if !errors.Is(err, ErrRouteNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrRouteNotFound", tt.path, err)
		}
		if !errors.Is(err, tt.cause) {
			t.Errorf("Resolve(%q) error = %v, want cause %v", tt.path, err, tt.cause)
		}
	}
}

func TestTableResolveCaseInsensitive(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		path     string
		wantView View
		wantID   string
	}{
		{"/PSYCHOLOGIST/1/chat", "PsychologistChat", "1"},
		{"/Psychologist/Ada/Intro", "PsychologistIntro", "Ada"},
		{"/psychologist/DrAda/CHAT/", "PsychologistChat", "DrAda"},
	}

	for _, tt := range tests {
		result, err := table.Resolve(tt.path)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.path, err)
			continue
		}
		if result.View != tt.wantView {
			t.Errorf("Resolve(%q).View = %q, want %q", tt.path, result.View, tt.wantView)
		}
		// Parameter values keep their case.
		if result.Params["id"] != tt.wantID {
			t.Errorf("Resolve(%q) id = %q, want %q", tt.path, result.Params["id"], tt.wantID)
		}
	}
}

func TestTableResolveIdempotent(t *testing.T) {
	table := newTestTable(t)

	first, err := table.Resolve("/psychologist/42/intro")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := table.Resolve("/psychologist/42/intro")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}

	// Each resolution owns its params.
	first.Params["id"] = "mutated"
	third, _ := table.Resolve("/psychologist/42/intro")
	if third.Params["id"] != "42" {
		t.Errorf("params leaked between resolutions: %q", third.Params["id"])
	}
}

func TestTableResolveConcurrent(t *testing.T) {
	table := newTestTable(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				result, err := table.Resolve("/psychologist/7/chat")
				if err != nil || result.Params["id"] != "7" {
					t.Errorf("concurrent Resolve = %+v, %v", result, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestTableStaticBeatsParam(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/psychologist/:id/intro", Name: "Intro", View: "Intro"},
		Route{Path: "/psychologist/featured/intro", Name: "Featured", View: "Featured"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	result, err := table.Resolve("/psychologist/featured/intro")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.View != "Featured" {
		t.Errorf("View = %q, want Featured", result.View)
	}

	result, err = table.Resolve("/psychologist/9/intro")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.View != "Intro" {
		t.Errorf("View = %q, want Intro", result.View)
	}
}

func TestTableBacktracksFromStatic(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/psychologist/featured", Name: "Featured", View: "Featured"},
		Route{Path: "/psychologist/:id/chat", Name: "Chat", View: "Chat"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	result, err := table.Resolve("/psychologist/featured/chat")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.View != "Chat" || result.Params["id"] != "featured" {
		t.Errorf("got %q %v, want Chat with id=featured", result.View, result.Params)
	}
}

func TestTableTypedParams(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/sessions/:id:int", Name: "Session", View: "Session"},
		Route{Path: "/transcripts/:id:uuid", Name: "Transcript", View: "Transcript"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if _, err := table.Resolve("/sessions/12"); err != nil {
		t.Errorf("Resolve int: %v", err)
	}
	if _, err := table.Resolve("/sessions/twelve"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Resolve non-int error = %v, want ErrRouteNotFound", err)
	}
	if _, err := table.Resolve("/transcripts/6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Errorf("Resolve uuid: %v", err)
	}
	if _, err := table.Resolve("/transcripts/not-a-uuid"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("Resolve non-uuid error = %v, want ErrRouteNotFound", err)
	}
}

func TestTableCatchAll(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/", Name: "Home", View: "Home"},
		Route{Path: "/*rest", Name: "NotFound", View: "NotFound"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	result, err := table.Resolve("/a/b/c")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.View != "NotFound" || result.Params["rest"] != "a/b/c" {
		t.Errorf("got %q %v, want NotFound rest=a/b/c", result.View, result.Params)
	}

	result, err = table.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.View != "Home" {
		t.Errorf("View = %q, want Home", result.View)
	}
}

func TestTableCatchAllEmptyRemainder(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/files/*rest", Name: "Files", View: "Files"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	href, err := table.Href("Files", map[string]string{"rest": ""})
	if err != nil {
		t.Fatalf("Href: %v", err)
	}
	if href != "/files" {
		t.Fatalf("Href = %q, want /files", href)
	}

	result, err := table.Resolve(href)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", href, err)
	}
	if result.Route.Name != "Files" {
		t.Errorf("Route = %q, want Files", result.Route.Name)
	}
	rest, ok := result.Params["rest"]
	if !ok || rest != "" {
		t.Errorf("rest = %q (present %v), want empty", rest, ok)
	}

	result, err = table.Resolve("/files/a/b")
	if err != nil || result.Params["rest"] != "a/b" {
		t.Errorf("Resolve(/files/a/b) = %+v, %v", result, err)
	}
}

func TestTableRoutesAndLookup(t *testing.T) {
	table := newTestTable(t)

	routes := table.Routes()
	if len(routes) != 3 || table.Len() != 3 {
		t.Fatalf("len(Routes()) = %d, Len() = %d, want 3", len(routes), table.Len())
	}
	wantOrder := []string{"HomePage", "PsychologistIntro", "PsychologistChat"}
	for i, name := range wantOrder {
		if routes[i].Name != name {
			t.Errorf("routes[%d].Name = %q, want %q", i, routes[i].Name, name)
		}
	}

	// Routes returns a copy.
	routes[0].Name = "mutated"
	if got, _ := table.Lookup("HomePage"); got.Path != "/" {
		t.Errorf("Lookup(HomePage).Path = %q, want /", got.Path)
	}

	if _, ok := table.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
}

func TestNewTableRejectsInvalid(t *testing.T) {
	_, err := NewTable(
		Route{Path: "/", Name: "Home", View: "Home"},
		Route{Path: "/", Name: "Home", View: "Other"},
	)
	var mve *MultiValidationError
	if !errors.As(err, &mve) {
		t.Fatalf("NewTable error = %v, want *MultiValidationError", err)
	}
	if len(mve.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2: %v", len(mve.Errors), mve)
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTable should panic on invalid routes")
		}
	}()
	MustTable(Route{Path: "no-slash", Name: "Bad"})
}

func TestRouteParams(t *testing.T) {
	route := Route{Path: "/psychologist/:id:int/files/*rest"}
	want := []ParamDef{
		{Name: "id", Type: ParamTypeInt, Segment: ":id:int"},
		{Name: "rest", Type: ParamTypeCatchAll, Segment: "*rest"},
	}
	if got := route.Params(); !reflect.DeepEqual(got, want) {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
	if got := (Route{Path: "/"}).Params(); got != nil {
		t.Errorf("Params() of / = %+v, want nil", got)
	}
}
