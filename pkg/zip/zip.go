// Package zip bundles generated files into a single archive.
package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Entry is one file of an archive.
type Entry struct {
	Name     string
	Modified time.Time
	Data     []byte
}

// Write streams entries as a zip archive to w. Names are flattened to their
// base name and de-duplicated with a numeric suffix.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		name := uniqueName(seen, entry.Name)
		header := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: entry.Modified}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("zip %s: %w", name, err)
		}
		if _, err := fw.Write(entry.Data); err != nil {
			return fmt.Errorf("zip %s: %w", name, err)
		}
	}
	return zw.Close()
}

func uniqueName(seen map[string]int, name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n+1, ext)
}
