package shuttle

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shuttlehttp/shuttle/spool"
)

func TestBuildEngineOptionsVersionMapping(t *testing.T) {
	h := NewHTTPHandler()

	tests := []struct {
		proto      string
		major      int
		minor      int
		forceHTTP2 bool
	}{
		{ProtoHTTP10, 1, 0, false},
		{ProtoHTTP11, 1, 1, false},
		{ProtoHTTP2, 2, 0, true},
	}

	for _, tt := range tests {
		req := NewRequest("GET", "http://example.com").WithProto(tt.proto)
		opts, err := h.buildEngineOptions(req)
		if err != nil {
			t.Fatalf("buildEngineOptions(%s) error: %v", tt.proto, err)
		}
		if opts.protoMajor != tt.major || opts.protoMinor != tt.minor {
			t.Fatalf("proto %s mapped to %d.%d, want %d.%d",
				tt.proto, opts.protoMajor, opts.protoMinor, tt.major, tt.minor)
		}
		if opts.forceHTTP2 != tt.forceHTTP2 {
			t.Fatalf("proto %s forceHTTP2 = %v, want %v", tt.proto, opts.forceHTTP2, tt.forceHTTP2)
		}
	}
}

func TestBuildEngineOptionsUnknownVersion(t *testing.T) {
	h := NewHTTPHandler()
	req := NewRequest("GET", "http://example.com").WithProto("3")

	_, err := h.buildEngineOptions(req)

	var verr *UnknownVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v (%T), want *UnknownVersionError", err, err)
	}
	if verr.Version != "3" {
		t.Fatalf("Version = %q, want %q", verr.Version, "3")
	}
}

func TestBuildEngineOptionsSchemeRestriction(t *testing.T) {
	h := NewHTTPHandler()

	for _, target := range []string{"ftp://example.com/file", "file:///etc/passwd"} {
		req := NewRequest("GET", target)
		_, err := h.buildEngineOptions(req)

		var terr *TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("target %q: error = %v (%T), want *TransportError", target, err, err)
		}
	}
}

func TestBuildEngineOptionsWireHeaders(t *testing.T) {
	h := NewHTTPHandler()
	req := NewRequest("GET", "http://example.com").
		WithHeader("x-custom-casing", "1").
		WithHeader("Accept", "text/html").
		WithAddedHeader("Accept", "application/json")

	opts, err := h.buildEngineOptions(req)
	if err != nil {
		t.Fatalf("buildEngineOptions() error: %v", err)
	}

	want := []string{
		"x-custom-casing: 1",
		"Accept: text/html",
		"Accept: application/json",
	}
	if !reflect.DeepEqual(opts.wireHeaders, want) {
		t.Fatalf("wireHeaders = %v, want %v", opts.wireHeaders, want)
	}
}

func TestBuildEngineOptionsCarriesHandlerKnobs(t *testing.T) {
	h := NewHTTPHandler().
		SetMaxRedirects(3).
		SetConnectTimeout(5 * time.Second).
		SetVerifyTLS(false)

	opts, err := h.buildEngineOptions(NewRequest("GET", "https://example.com"))
	if err != nil {
		t.Fatalf("buildEngineOptions() error: %v", err)
	}

	if opts.maxRedirects != 3 {
		t.Fatalf("maxRedirects = %d, want 3", opts.maxRedirects)
	}
	if opts.connectTimeout != 5*time.Second {
		t.Fatalf("connectTimeout = %v, want 5s", opts.connectTimeout)
	}
	if opts.verifyTLS {
		t.Fatal("verifyTLS = true, want false")
	}
}

func TestReasonFromStatusLine(t *testing.T) {
	tests := []struct {
		status string
		code   int
		want   string
	}{
		{"200 OK", 200, "OK"},
		{"404 Not Found", 404, "Not Found"},
		{"299 Custom Phrase", 299, "Custom Phrase"},
		{"200", 200, ""},
		{"", 200, ""},
	}

	for _, tt := range tests {
		if got := reasonFromStatusLine(tt.status, tt.code); got != tt.want {
			t.Errorf("reasonFromStatusLine(%q, %d) = %q, want %q", tt.status, tt.code, got, tt.want)
		}
	}
}

func TestHTTPHandlerExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Probe"); got != "42" {
			t.Errorf("X-Probe = %q, want 42", got)
		}
		w.Header().Set("X-Answer", "hello")
		w.WriteHeader(http.StatusTeapot)
		fmt.Fprint(w, "short and stout")
	}))
	defer srv.Close()

	h := NewHTTPHandler()
	req := NewRequest("GET", srv.URL).WithHeader("X-Probe", "42")

	res, err := h.Execute(req)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.StatusCode() != http.StatusTeapot {
		t.Fatalf("StatusCode() = %d, want 418", res.StatusCode())
	}
	if v, _ := res.Headers().Get("X-Answer"); v != "hello" {
		t.Fatalf("X-Answer = %q, want hello", v)
	}

	body, err := io.ReadAll(res.Body())
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != "short and stout" {
		t.Fatalf("body = %q, want %q", body, "short and stout")
	}
}

func TestHTTPHandlerExecutePostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if string(b) != "payload" {
			t.Errorf("request body = %q, want payload", b)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	h := NewHTTPHandler()
	req := NewRequest("POST", srv.URL).
		WithBody(BodyString("payload")).
		WithHeader("Content-Type", "text/plain; charset=utf-8")

	res, err := h.Execute(req)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.StatusCode() != http.StatusCreated {
		t.Fatalf("StatusCode() = %d, want 201", res.StatusCode())
	}
}

func TestHTTPHandlerSpillsLargeBody(t *testing.T) {
	payload := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	h := NewHTTPHandler().SetBufferThreshold(1024)

	res, err := h.Execute(NewRequest("GET", srv.URL))
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	buf, ok := res.Body().(*spool.Buffer)
	if !ok {
		t.Fatalf("Body() = %T, want *spool.Buffer", res.Body())
	}
	defer buf.Close()

	if !buf.Spilled() {
		t.Fatal("expected body above threshold to spill to disk")
	}

	body, err := io.ReadAll(buf)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != payload {
		t.Fatalf("body length = %d, want %d", len(body), len(payload))
	}
}

func TestHTTPHandlerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection will be refused

	h := NewHTTPHandler()
	res, err := h.Execute(NewRequest("GET", url))

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if res != nil {
		t.Fatal("no partial Response may be returned on error")
	}
}

func TestHTTPHandlerRedirectLimit(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	h := NewHTTPHandler().SetMaxRedirects(2)

	_, err := h.Execute(NewRequest("GET", srv.URL))

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v (%T), want *TransportError after redirect limit", err, err)
	}
}

func TestHTTPHandlerSetDebugChains(t *testing.T) {
	h := NewHTTPHandler()
	if got := h.SetDebug(true); got != Handler(h) {
		t.Fatal("SetDebug must return the handler for chaining")
	}
}
