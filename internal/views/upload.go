package views

import (
	"net/http"
	"strings"
)

// Upload is a file chosen by the user, held fully in memory.
type Upload struct {
	Name     string
	MIMEType string
	Data     []byte
}

// UploadInfo describes an Upload without its bytes.
type UploadInfo struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// NewUpload copies data and resolves its MIME type, sniffing when none is given.
func NewUpload(name, mimeType string, data []byte) *Upload {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
		if idx := strings.Index(mimeType, ";"); idx >= 0 {
			mimeType = mimeType[:idx]
		}
	}
	return &Upload{Name: name, MIMEType: mimeType, Data: append([]byte(nil), data...)}
}

func (u *Upload) info() *UploadInfo {
	if u == nil {
		return nil
	}
	return &UploadInfo{Name: u.Name, MIMEType: u.MIMEType, Size: len(u.Data)}
}
