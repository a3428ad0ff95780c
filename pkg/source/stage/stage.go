package stage

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Dir resolves today's staging directory for sourceTag under dataDir,
// creating it if absent. Re-running on the same day reuses the
// directory; re-running on a later day gets a fresh one.
func Dir(dataDir, sourceTag string, now time.Time) (string, error) {
	dir := filepath.Join(dataDir, sourceTag, now.UTC().Format(dateLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging dir %s: %w", dir, err)
	}
	return dir, nil
}

// Latest returns the most recent dated staging directory for
// sourceTag, for --download=false runs that reuse a prior fetch.
// Returns an error if none exists yet.
func Latest(dataDir, sourceTag string) (string, error) {
	base := filepath.Join(dataDir, sourceTag)
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("no staged data for %s: %w", sourceTag, err)
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			if _, err := time.Parse(dateLayout, e.Name()); err == nil {
				dates = append(dates, e.Name())
			}
		}
	}
	if len(dates) == 0 {
		return "", fmt.Errorf("no dated staging directories under %s", base)
	}
	sort.Strings(dates)
	return filepath.Join(base, dates[len(dates)-1]), nil
}

// ExtractZIP decompresses src into destDir and returns the path of the
// first member whose name doesn't end in "/" — the common case of a
// single-payload archive. Members after the first are still written to
// disk, just not returned as "the" payload.
func ExtractZIP(src, destDir string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open zip %s: %w", src, err)
	}
	defer r.Close()

	var payload string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		outPath := filepath.Join(destDir, filepath.Base(f.Name))
		if err := extractOne(f, outPath); err != nil {
			return "", err
		}
		if payload == "" {
			payload = outPath
		}
	}
	if payload == "" {
		return "", fmt.Errorf("zip %s contained no file members", src)
	}
	return payload, nil
}

func extractOne(f *zip.File, outPath string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open zip member %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("failed to extract %s: %w", outPath, err)
	}
	return nil
}

// integrityPeekBytes bounds how much of a small file we read to decide
// whether it's an HTML error page masquerading as data.
const integrityPeekBytes = 1024

// CheckIntegrity deletes path and reports false if it is smaller than
// 1KB and begins with an HTML doctype or tag — the signature of an
// agency web server returning an error page instead of the requested
// file.
func CheckIntegrity(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() >= integrityPeekBytes {
		return true, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	buf := make([]byte, integrityPeekBytes)
	n, _ := f.Read(buf)
	f.Close()

	head := bytes.ToLower(bytes.TrimSpace(buf[:n]))
	if bytes.HasPrefix(head, []byte("<html")) || bytes.HasPrefix(head, []byte("<!doctype")) {
		_ = os.Remove(path)
		return false, nil
	}
	return true, nil
}
