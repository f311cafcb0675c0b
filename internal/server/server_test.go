package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boradatti/gummygrid/pkg/cache"
	"github.com/boradatti/gummygrid/pkg/gummygrid"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(opts).Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestAvatarEndpoint(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := get(t, ts.URL+"/v1/avatar/jarvis")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(body, "<svg") {
		t.Errorf("body does not start with <svg: %.40q", body)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestAvatarDeterministicAcrossRequests(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, first := get(t, ts.URL+"/v1/avatar/jarvis")
	_, second := get(t, ts.URL+"/v1/avatar/jarvis")
	if first != second {
		t.Error("same seed returned different documents")
	}
	_, other := get(t, ts.URL+"/v1/avatar/jarvas")
	if first == other {
		t.Error("different seeds returned identical documents")
	}
}

func TestAvatarQueryOverrides(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, base := get(t, ts.URL+"/v1/avatar/jarvis")
	_, salted := get(t, ts.URL+"/v1/avatar/jarvis?salt=9")
	if base == salted {
		t.Error("salt override had no effect")
	}
	resp, sized := get(t, ts.URL+"/v1/avatar/jarvis?rows=7&cols=7&size=20")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", resp.StatusCode, sized)
	}
	if base == sized {
		t.Error("dimension overrides had no effect")
	}
}

func TestAvatarInvalidParams(t *testing.T) {
	ts := newTestServer(t, Options{})
	for _, q := range []string{"rows=0", "rows=x", "cols=-2", "salt=abc", "size=0"} {
		resp, body := get(t, ts.URL+"/v1/avatar/jarvis?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
		if !strings.Contains(body, "request_id") {
			t.Errorf("%s: error body missing request_id: %s", q, body)
		}
	}
}

func TestAvatarUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ts := newTestServer(t, Options{Cache: fc, CacheTTL: time.Hour})

	_, first := get(t, ts.URL+"/v1/avatar/jarvis")
	_, second := get(t, ts.URL+"/v1/avatar/jarvis")
	if first != second {
		t.Error("cached response differs from generated response")
	}

	// Overridden requests must not collide with the base entry.
	_, overridden := get(t, ts.URL+"/v1/avatar/jarvis?rows=7&cols=7")
	if overridden == first {
		t.Error("override response collided with cached base response")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, Options{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-Id", "upstream-id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); got != "upstream-id" {
		t.Errorf("X-Request-Id = %q, want upstream-id", got)
	}
}

func TestBaseConfigApplies(t *testing.T) {
	ts := newTestServer(t, Options{
		BaseConfig: gummygrid.Config{Salt: 7},
	})
	_, salted := get(t, ts.URL+"/v1/avatar/jarvis")

	plain := newTestServer(t, Options{})
	_, base := get(t, plain.URL+"/v1/avatar/jarvis")
	if salted == base {
		t.Error("base config salt had no effect")
	}
}
