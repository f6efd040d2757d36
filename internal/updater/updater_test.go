package updater

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
)

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"0.1.0", "0.2.0", true},
		{"0.2.0", "0.2.0", false},
		{"0.3.0", "0.2.0", false},
		{"0.1.0", "1.0.0", true},
		{"1.9.0", "1.10.0", true},
		{"v0.1.0", "v0.1.1", true},
		{"dev", "9.9.9", false},
		{"", "1.0.0", false},
		{"1.0.0", "", false},
		{"not-a-version", "1.0.0", false},
	}

	for _, tt := range tests {
		if got := isNewer(tt.current, tt.latest); got != tt.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

// --- assetName ---

func TestAssetName(t *testing.T) {
	got := assetName("v1.2.3")
	want := fmt.Sprintf("loom_1.2.3_%s_%s.tar.gz", runtime.GOOS, runtime.GOARCH)
	if got != want {
		t.Errorf("assetName = %q, want %q", got, want)
	}
}

// --- CheckVersion ---

func withReleaseServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint = srv.URL
	httpClient = srv.Client()
	t.Cleanup(func() {
		releaseEndpoint = origEndpoint
		httpClient = origClient
	})
}

func TestCheckVersionUpdateAvailable(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v2.0.0", "html_url": "https://example.com/release"}`)
	})

	result := CheckVersion("1.0.0")
	if !result.UpdateAvailable {
		t.Error("update should be available")
	}
	if result.LatestVersion != "v2.0.0" {
		t.Errorf("LatestVersion = %q", result.LatestVersion)
	}
	if result.ReleaseURL != "https://example.com/release" {
		t.Errorf("ReleaseURL = %q", result.ReleaseURL)
	}
}

func TestCheckVersionUpToDate(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v1.0.0"}`)
	})

	if result := CheckVersion("1.0.0"); result.UpdateAvailable {
		t.Error("no update should be available at the same version")
	}
}

func TestCheckVersionSwallowsAPIErrors(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	result := CheckVersion("1.0.0")
	if result.UpdateAvailable {
		t.Error("API failure must not report an update")
	}
	if result.CurrentVersion != "1.0.0" {
		t.Errorf("CurrentVersion = %q", result.CurrentVersion)
	}
}

func TestCheckVersionSetsUserAgent(t *testing.T) {
	var gotUA string
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"tag_name": "v1.0.0"}`)
	})

	CheckVersion("1.0.0")
	if !strings.HasPrefix(gotUA, "loom/") {
		t.Errorf("User-Agent = %q, want loom/<version>", gotUA)
	}
}

// --- SelfUpdate ---

func TestSelfUpdateAlreadyLatest(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v1.0.0"}`)
	})

	err := SelfUpdate("1.0.0")
	if err == nil || !strings.Contains(err.Error(), "already at latest") {
		t.Errorf("SelfUpdate = %v, want already-at-latest error", err)
	}
}

func TestSelfUpdateMissingAsset(t *testing.T) {
	withReleaseServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v9.0.0", "assets": []}`)
	})

	err := SelfUpdate("1.0.0")
	if err == nil || !strings.Contains(err.Error(), "no release asset") {
		t.Errorf("SelfUpdate = %v, want missing-asset error", err)
	}
}

// --- extractBinary ---

func makeTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o755, Size: int64(len(content))}); err != nil {
		t.Fatalf("writing tar header: %v", err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatalf("writing tar content: %v", err)
	}
	tw.Close()
	gz.Close()
	return buf.Bytes()
}

func TestExtractBinary(t *testing.T) {
	archive := makeTarGz(t, "loom", []byte("binary-bytes"))
	got, err := extractBinary(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractBinary failed: %v", err)
	}
	if string(got) != "binary-bytes" {
		t.Errorf("extracted %q", got)
	}
}

func TestExtractBinaryNested(t *testing.T) {
	archive := makeTarGz(t, "loom_1.0.0_linux_amd64/loom", []byte("nested"))
	got, err := extractBinary(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractBinary failed: %v", err)
	}
	if string(got) != "nested" {
		t.Errorf("extracted %q", got)
	}
}

func TestExtractBinaryMissing(t *testing.T) {
	archive := makeTarGz(t, "README.md", []byte("docs"))
	if _, err := extractBinary(bytes.NewReader(archive)); err == nil {
		t.Error("extractBinary found a binary in an archive without one")
	}
}

func TestExtractBinaryBadGzip(t *testing.T) {
	if _, err := extractBinary(strings.NewReader("not gzip")); err == nil {
		t.Error("extractBinary accepted invalid gzip data")
	}
}
