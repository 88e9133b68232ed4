package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestFetchHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("bundle bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "sframe_deps_linux_no_cuda.tar.gz")
	if err := Fetch(context.Background(), srv.URL+"/bundle.tar.gz", dest); err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "bundle bytes" {
		t.Errorf("downloaded %q, want %q", data, "bundle bytes")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	// Second call must be a no-op returning the cached file.
	if err := Fetch(context.Background(), srv.URL+"/bundle.tar.gz", dest); err != nil {
		t.Fatalf("second Fetch() = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits after second fetch = %d, want 1", got)
	}
}

func TestFetchHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "bundle.tar.gz")
	if err := Fetch(context.Background(), srv.URL+"/missing", dest); err == nil {
		t.Fatal("Fetch() = nil, want error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination exists after failed fetch")
	}
	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after failed fetch")
	}
}

func TestFetchLocalCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.tar.gz")
	if err := os.WriteFile(src, []byte("local archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out", "dest.tar.gz")
	if err := Fetch(context.Background(), src, dest); err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "local archive" {
		t.Errorf("copied %q, want %q", data, "local archive")
	}
}

func TestFetchLocalMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Fetch(context.Background(), filepath.Join(dir, "nope.tar.gz"), filepath.Join(dir, "dest"))
	if err == nil {
		t.Fatal("Fetch() = nil, want error for missing local source")
	}
}

func TestSplitS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		bucketCont string
		keyCont    string
		wantErr    bool
	}{
		{uri: "s3://sframe-deps/20160317/sframe_deps_mac.tar.gz", bucketCont: "sframe-deps", keyCont: "20160317/sframe_deps_mac.tar.gz"},
		{uri: "s3://bucket-only", wantErr: true},
		{uri: "s3:///key-only", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := splitS3URI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("splitS3URI(%q) = nil error", tt.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitS3URI(%q) = %v", tt.uri, err)
			}
			if bucket != tt.bucketCont || key != tt.keyCont {
				t.Errorf("splitS3URI(%q) = (%q, %q)", tt.uri, bucket, key)
			}
		})
	}
}
