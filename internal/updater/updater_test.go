package updater

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

// --- version helpers ---

func TestTrimVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"", ""},
		{"v", ""},
		{"vv1.0.0", "v1.0.0"}, // only one leading v is stripped
	}
	for _, tt := range tests {
		if got := trimVersion(tt.input); got != tt.want {
			t.Errorf("trimVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"newer major", "0.2.0", "1.0.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty current", "", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"dev build never updates", "dev", "0.2.0", false},
		{"two part current", "0.2", "0.3.0", true},
		{"two part latest", "0.2.0", "0.3", true},
		{"major jump", "1.9.9", "2.0.0", true},
		{"double digit minor", "0.9.0", "0.10.0", true},
		{"prerelease suffix ignored", "0.3.0", "0.3rc1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		input string
		want  [3]int
	}{
		{"1.2.3", [3]int{1, 2, 3}},
		{"0.2", [3]int{0, 2, 0}},
		{"3rc1.0", [3]int{3, 0, 0}},
		{"", [3]int{0, 0, 0}},
	}
	for _, tt := range tests {
		if got := splitVersion(tt.input); got != tt.want {
			t.Errorf("splitVersion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// --- assetNameFor ---

func TestAssetNameFor(t *testing.T) {
	got := assetNameFor("0.3.0")

	wantExt := "tar.gz"
	if runtime.GOOS == "windows" {
		wantExt = "zip"
	}
	want := "plankeep_0.3.0_" + runtime.GOOS + "_" + runtime.GOARCH + "." + wantExt
	if got != want {
		t.Errorf("assetNameFor(\"0.3.0\") = %q, want %q", got, want)
	}
}

// --- CheckVersion ---

// releaseServer serves a fixed release payload and redirects the
// package's endpoint and client at it for the test's duration.
func releaseServer(t *testing.T, release Release, statusCode int) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(statusCode)
		if statusCode == http.StatusOK {
			_ = json.NewEncoder(w).Encode(release)
		}
	}))
	pointAt(t, ts)
}

func pointAt(t *testing.T, ts *httptest.Server) {
	t.Helper()
	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint = ts.URL
	httpClient = ts.Client()
	t.Cleanup(func() {
		releaseEndpoint = origEndpoint
		httpClient = origClient
		ts.Close()
	})
}

func TestCheckVersion_UpdateAvailable(t *testing.T) {
	releaseServer(t, Release{
		TagName: "v0.3.0",
		HTMLURL: "https://github.com/plankeep/plankeep/releases/tag/v0.3.0",
	}, http.StatusOK)

	result := CheckVersion("v0.2.0")

	if !result.UpdateAvailable {
		t.Error("expected UpdateAvailable")
	}
	if result.LatestVersion != "0.3.0" {
		t.Errorf("LatestVersion = %q, want %q", result.LatestVersion, "0.3.0")
	}
	if result.CurrentVersion != "0.2.0" {
		t.Errorf("CurrentVersion = %q, want %q", result.CurrentVersion, "0.2.0")
	}
	if result.ReleaseURL == "" {
		t.Error("ReleaseURL should be filled from the release payload")
	}
}

func TestCheckVersion_AlreadyLatest(t *testing.T) {
	releaseServer(t, Release{TagName: "v0.2.0"}, http.StatusOK)

	if result := CheckVersion("v0.2.0"); result.UpdateAvailable {
		t.Error("no update should be reported when already at latest")
	}
}

func TestCheckVersion_NetworkErrorIsSilent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	origEndpoint, origClient := releaseEndpoint, httpClient
	releaseEndpoint = ts.URL
	httpClient = ts.Client()
	t.Cleanup(func() {
		releaseEndpoint = origEndpoint
		httpClient = origClient
	})
	ts.Close() // force connection refused

	result := CheckVersion("v0.2.0")
	if result.UpdateAvailable {
		t.Error("network failure must not report an update")
	}
	if result.CurrentVersion != "0.2.0" {
		t.Errorf("CurrentVersion = %q, want %q", result.CurrentVersion, "0.2.0")
	}
}

func TestCheckVersion_APIErrorIsSilent(t *testing.T) {
	releaseServer(t, Release{}, http.StatusForbidden)

	if result := CheckVersion("v0.2.0"); result.UpdateAvailable {
		t.Error("API failure must not report an update")
	}
}

func TestCheckVersion_DevBuild(t *testing.T) {
	releaseServer(t, Release{TagName: "v0.3.0"}, http.StatusOK)

	if result := CheckVersion("dev"); result.UpdateAvailable {
		t.Error("dev builds should never see updates")
	}
}

// --- SelfUpdate ---

func TestSelfUpdate_AlreadyLatest(t *testing.T) {
	releaseServer(t, Release{TagName: "v0.2.0"}, http.StatusOK)

	err := SelfUpdate("v0.2.0")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got, want := err.Error(), "already at latest version (v0.2.0)"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestSelfUpdate_APIError(t *testing.T) {
	releaseServer(t, Release{}, http.StatusInternalServerError)

	if err := SelfUpdate("v0.2.0"); err == nil {
		t.Fatal("expected an error on API failure")
	}
}

func TestSelfUpdate_NoMatchingAsset(t *testing.T) {
	releaseServer(t, Release{
		TagName: "v0.3.0",
		Assets: []Asset{
			{Name: "plankeep_0.3.0_solaris_sparc.tar.gz", BrowserDownloadURL: "https://example.com/nope"},
		},
	}, http.StatusOK)

	if err := SelfUpdate("v0.2.0"); err == nil {
		t.Fatal("expected an error when no asset matches this OS/arch")
	}
}

// --- archive extraction ---

// tarGzWith builds a .tar.gz archive holding a single file.
func tarGzWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	header := &tar.Header{Name: name, Mode: 0o755, Size: int64(len(content))}
	if err := tw.WriteHeader(header); err != nil {
		t.Fatalf("tar header: %v", err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatalf("tar body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	return buf.Bytes()
}

// zipWith builds a .zip archive holding a single file.
func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("zip entry: %v", err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatalf("zip body: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractFromTarGz(t *testing.T) {
	content := []byte("#!/bin/sh\necho hello\n")
	archive := tarGzWith(t, "plankeep", content)

	data, err := extractFromTarGz(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromTarGz: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromTarGz_BinaryMissing(t *testing.T) {
	archive := tarGzWith(t, "README.md", []byte("docs"))

	if _, err := extractFromTarGz(bytes.NewReader(archive)); err == nil {
		t.Fatal("expected an error when the binary is not in the archive")
	}
}

func TestExtractFromTarGz_InvalidGzip(t *testing.T) {
	if _, err := extractFromTarGz(bytes.NewReader([]byte("not gzip data"))); err == nil {
		t.Fatal("expected an error on invalid gzip data")
	}
}

func TestExtractFromZip(t *testing.T) {
	content := []byte("MZ fake windows binary")
	archive := zipWith(t, "plankeep.exe", content)

	data, err := extractFromZip(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromZip: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromZip_NestedPath(t *testing.T) {
	content := []byte("nested binary")
	archive := zipWith(t, "plankeep_0.3.0_windows_amd64/plankeep.exe", content)

	data, err := extractFromZip(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("extractFromZip: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("extracted = %q, want %q", data, content)
	}
}

func TestExtractFromZip_BinaryMissing(t *testing.T) {
	archive := zipWith(t, "LICENSE", []byte("MIT"))

	if _, err := extractFromZip(bytes.NewReader(archive)); err == nil {
		t.Fatal("expected an error when the binary is not in the archive")
	}
}

func TestExtractFromZip_InvalidData(t *testing.T) {
	if _, err := extractFromZip(bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Fatal("expected an error on invalid zip data")
	}
}

func TestExtractBinary_DispatchesByExtension(t *testing.T) {
	content := []byte("binary data")

	data, err := extractBinary(bytes.NewReader(tarGzWith(t, "plankeep", content)), "plankeep_0.3.0_linux_amd64.tar.gz")
	if err != nil {
		t.Fatalf("tar.gz dispatch: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("tar.gz: extracted = %q, want %q", data, content)
	}

	data, err = extractBinary(bytes.NewReader(zipWith(t, "plankeep.exe", content)), "plankeep_0.3.0_windows_amd64.zip")
	if err != nil {
		t.Fatalf("zip dispatch: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("zip: extracted = %q, want %q", data, content)
	}
}
