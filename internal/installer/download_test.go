package installer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestFileNameFor(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"7-Zip", "https://www.7-zip.org/a/7z2408-x64.msi", "7-Zip.msi"},
		{"Visual Studio Code", "https://example.com/vscode.exe", "Visual-Studio-Code.exe"},
		{"Tool", "https://example.com/download", "Tool.exe"},
		{"Tool", "https://example.com/archive.zip?token=abc", "Tool.zip"},
		{"  ", "https://example.com/x.exe", "download.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.url, func(t *testing.T) {
			if got := fileNameFor(tt.name, tt.url); got != tt.want {
				t.Errorf("fileNameFor(%q, %q) = %q, want %q", tt.name, tt.url, got, tt.want)
			}
		})
	}
}

func TestDownloadTempRemovesPartialFile(t *testing.T) {
	// Server advertises more bytes than it sends, producing a copy error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	tempDir := t.TempDir()
	d := testDispatcher(newFakeRunner(), WithTempDir(tempDir))

	if _, err := d.downloadTemp(context.Background(), "Tool", srv.URL+"/tool.exe"); err == nil {
		t.Fatal("truncated download should fail")
	}
	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}

func TestDownloadClientBoundsHeaderWait(t *testing.T) {
	tr, ok := downloadClient().Transport.(*http.Transport)
	if !ok {
		t.Fatal("download client should carry a configured transport")
	}
	if tr.ResponseHeaderTimeout <= 0 {
		t.Error("response header wait is unbounded")
	}
	if tr.TLSHandshakeTimeout <= 0 {
		t.Error("TLS handshake wait is unbounded")
	}
	if tr.DialContext == nil {
		t.Error("dialing is unbounded")
	}
}

func TestDownloadTempFailsOnStalledServer(t *testing.T) {
	// Server never sends headers; the bounded client gives up and the
	// failure is terminal, with nothing left in the temp directory.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	tempDir := t.TempDir()
	stallClient := &http.Client{
		Transport: &http.Transport{ResponseHeaderTimeout: 50 * time.Millisecond},
	}
	d := testDispatcher(newFakeRunner(), WithTempDir(tempDir), WithHTTPClient(stallClient))

	if _, err := d.downloadTemp(context.Background(), "Tool", srv.URL+"/tool.exe"); err == nil {
		t.Fatal("stalled download should fail")
	}
	entries, _ := os.ReadDir(tempDir)
	if len(entries) != 0 {
		t.Errorf("stalled download left files behind: %v", entries)
	}
}

func TestDownloadTempHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := testDispatcher(newFakeRunner(), WithTempDir(t.TempDir()))
	if _, err := d.downloadTemp(context.Background(), "Tool", srv.URL+"/gone.exe"); err == nil {
		t.Fatal("404 download should fail")
	}
}
