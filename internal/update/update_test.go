package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveRelease(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	old := releasesURL
	releasesURL = srv.URL
	t.Cleanup(func() {
		releasesURL = old
		srv.Close()
	})
}

func TestCheckNewerVersion(t *testing.T) {
	serveRelease(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	latest, ok := Check(context.Background(), "v1.1.0")
	if !ok {
		t.Fatal("expected a newer version")
	}
	if latest != "1.2.0" {
		t.Errorf("latest = %q, want 1.2.0", latest)
	}
}

func TestCheckAlreadyCurrent(t *testing.T) {
	serveRelease(t, http.StatusOK, `{"tag_name": "v1.1.0"}`)
	if _, ok := Check(context.Background(), "1.1.0"); ok {
		t.Error("current build reported as outdated")
	}
}

func TestCheckSkipsPrereleaseAndDraft(t *testing.T) {
	tests := []string{
		`{"tag_name": "v2.0.0-rc1", "prerelease": true}`,
		`{"tag_name": "v2.0.0", "draft": true}`,
	}
	for _, body := range tests {
		serveRelease(t, http.StatusOK, body)
		if _, ok := Check(context.Background(), "1.0.0"); ok {
			t.Errorf("offered %s as an update", body)
		}
	}
}

func TestCheckSkipsDevBuilds(t *testing.T) {
	serveRelease(t, http.StatusOK, `{"tag_name": "v9.9.9"}`)
	if _, ok := Check(context.Background(), "dev"); ok {
		t.Error("dev build should never see update prompts")
	}
}

func TestCheckHTTPError(t *testing.T) {
	serveRelease(t, http.StatusForbidden, `rate limited`)
	if _, ok := Check(context.Background(), "1.0.0"); ok {
		t.Error("non-200 response treated as an update")
	}
}
