// Package fetch retrieves toolchain archives from local paths, HTTP(S)
// URLs or s3:// URIs.
//
// Fetch is idempotent: when the destination file already exists no
// transport is touched. Downloads land in a .tmp sibling and are renamed
// into place, so a partial transfer never satisfies the existence check on
// a later run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/PratikSonavane14/SFrame/internal/ui"
)

var httpClient = newHTTPClient()

func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Bundle hosts behind slow TLS frontends need more than the 10s default.
	transport.TLSHandshakeTimeout = 30 * time.Second
	return &http.Client{Transport: transport}
}

// Fetch materializes source at dest. Skips all I/O when dest exists.
func Fetch(ctx context.Context, source, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		ui.Debugf("%s already present, skipping fetch\n", dest)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	tmp := dest + ".tmp"
	var err error
	switch {
	case strings.HasPrefix(source, "s3://"):
		err = fetchS3(ctx, source, tmp)
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		err = fetchHTTP(ctx, source, tmp)
	default:
		err = copyLocal(source, tmp)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move download into place: %w", err)
	}
	return nil
}

func fetchHTTP(ctx context.Context, url, tmp string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return writeStream(tmp, resp.Body, resp.ContentLength, filepath.Base(tmp))
}

func copyLocal(source, tmp string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open local archive: %w", err)
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy local archive: %w", err)
	}
	return out.Close()
}

// writeStream copies r into path, with a progress bar when stderr is a
// terminal.
func writeStream(path string, r io.Reader, total int64, label string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	var w io.Writer = out
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar := progressbar.DefaultBytes(total, "downloading "+strings.TrimSuffix(label, ".tmp"))
		defer bar.Close()
		w = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(w, r); err != nil {
		out.Close()
		return fmt.Errorf("write download: %w", err)
	}
	return out.Close()
}
