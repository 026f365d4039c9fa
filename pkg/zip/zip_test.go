package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{
		{Name: "script.md", Data: []byte("# Hook")},
		{Name: "../clip.mp4", Data: []byte("mp4")},
		{Name: "clip.mp4", Data: []byte("mp4-2")},
		{Name: "", Data: []byte("x")},
	})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	want := map[string]string{
		"script.md":  "# Hook",
		"clip.mp4":   "mp4",
		"clip-2.mp4": "mp4-2",
		"file":       "x",
	}
	if len(zr.File) != len(want) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(want))
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		if want[f.Name] != string(data) {
			t.Fatalf("%s = %q, want %q", f.Name, data, want[f.Name])
		}
	}
}
