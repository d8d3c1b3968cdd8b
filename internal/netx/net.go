// Package netx contains small HTTP helpers that sit outside the API client:
// fetching generated images to local files.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResolveURL resolves ref against base. Absolute refs are returned unchanged;
// relative ones (e.g. "static/a.jpg") are joined onto the backend base URL.
func ResolveURL(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse image url %q: %w", ref, err)
	}
	if r.IsAbs() {
		return r.String(), nil
	}
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	return b.ResolveReference(r).String(), nil
}

// FileNameFor picks a local file name for the image at rawURL. The URL path's
// base name is used when it has an extension, otherwise "image-<n>.png".
func FileNameFor(rawURL string, index int) string {
	fallback := fmt.Sprintf("image-%d.png", index+1)
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || path.Ext(name) == "" {
		return fallback
	}
	return fmt.Sprintf("%d-%s", index+1, name)
}

// DownloadFile GETs rawURL and writes the body to dir/name, returning the
// written path. Any non-200 response is an error and leaves no file behind.
func DownloadFile(ctx context.Context, client *http.Client, rawURL, dir, name string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(dir, name)

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return target, nil
}
